package database

import "github.com/jackc/pgx/v5/pgtype"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    pgtype.Timestamptz
}

type Tag struct {
	ID    int64
	Name  string
	Color string
	Slug  string
}

type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	ImageUrl    pgtype.Text
	CookingTime int32
	CreatedAt   pgtype.Timestamptz
}

type RecipeIngredient struct {
	RecipeID     int64
	IngredientID int64
	Amount       int32
}
