package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createRecipe = `
INSERT INTO recipes (author_id, name, text, cooking_time)
VALUES ($1, $2, $3, $4)
RETURNING id
`

type CreateRecipeParams struct {
	AuthorID    int64
	Name        string
	Text        string
	CookingTime int32
}

func (q *Queries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (int64, error) {
	row := q.db.QueryRow(ctx, createRecipe,
		arg.AuthorID,
		arg.Name,
		arg.Text,
		arg.CookingTime,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getRecipe = `
SELECT id, author_id, name, text, image_url, cooking_time, created_at
FROM recipes
WHERE id = $1
`

func (q *Queries) GetRecipe(ctx context.Context, id int64) (Recipe, error) {
	row := q.db.QueryRow(ctx, getRecipe, id)
	var r Recipe
	err := row.Scan(
		&r.ID,
		&r.AuthorID,
		&r.Name,
		&r.Text,
		&r.ImageUrl,
		&r.CookingTime,
		&r.CreatedAt,
	)
	return r, err
}

const listRecipes = `
SELECT r.id, r.author_id, r.name, r.text, r.image_url, r.cooking_time, r.created_at
FROM recipes r
WHERE ($1::bigint IS NULL OR r.author_id = $1)
  AND (cardinality($2::text[]) = 0 OR EXISTS (
      SELECT 1 FROM recipe_tags rt
      JOIN tags t ON t.id = rt.tag_id
      WHERE rt.recipe_id = r.id AND t.slug = ANY ($2)))
  AND (NOT $3::boolean OR EXISTS (
      SELECT 1 FROM favorites f
      WHERE f.recipe_id = r.id AND f.user_id = $5))
  AND (NOT $4::boolean OR EXISTS (
      SELECT 1 FROM shopping_cart sc
      WHERE sc.recipe_id = r.id AND sc.user_id = $5))
ORDER BY r.created_at DESC, r.name
LIMIT $6 OFFSET $7
`

type ListRecipesParams struct {
	AuthorID      pgtype.Int8
	TagSlugs      []string
	OnlyFavorited bool
	OnlyInCart    bool
	UserID        pgtype.Int8
	Limit         int32
	Offset        int32
}

func (q *Queries) ListRecipes(ctx context.Context, arg ListRecipesParams) ([]Recipe, error) {
	if arg.TagSlugs == nil {
		arg.TagSlugs = []string{}
	}
	rows, err := q.db.Query(ctx, listRecipes,
		arg.AuthorID,
		arg.TagSlugs,
		arg.OnlyFavorited,
		arg.OnlyInCart,
		arg.UserID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(
			&r.ID,
			&r.AuthorID,
			&r.Name,
			&r.Text,
			&r.ImageUrl,
			&r.CookingTime,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const updateRecipe = `
UPDATE recipes
SET name = $2, text = $3, cooking_time = $4
WHERE id = $1
`

type UpdateRecipeParams struct {
	ID          int64
	Name        string
	Text        string
	CookingTime int32
}

func (q *Queries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateRecipe,
		arg.ID,
		arg.Name,
		arg.Text,
		arg.CookingTime,
	)
	return tag.RowsAffected(), err
}

const updateRecipeImage = `
UPDATE recipes SET image_url = $2 WHERE id = $1
`

type UpdateRecipeImageParams struct {
	ID       int64
	ImageUrl pgtype.Text
}

func (q *Queries) UpdateRecipeImage(ctx context.Context, arg UpdateRecipeImageParams) error {
	_, err := q.db.Exec(ctx, updateRecipeImage, arg.ID, arg.ImageUrl)
	return err
}

const deleteRecipe = `
DELETE FROM recipes WHERE id = $1
`

func (q *Queries) DeleteRecipe(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteRecipe, id)
	return tag.RowsAffected(), err
}

const checkRecipeOwnership = `
SELECT EXISTS (SELECT 1 FROM recipes WHERE id = $1 AND author_id = $2)
`

type CheckRecipeOwnershipParams struct {
	ID       int64
	AuthorID int64
}

func (q *Queries) CheckRecipeOwnership(ctx context.Context, arg CheckRecipeOwnershipParams) (bool, error) {
	row := q.db.QueryRow(ctx, checkRecipeOwnership, arg.ID, arg.AuthorID)
	var owns bool
	err := row.Scan(&owns)
	return owns, err
}

const addRecipeIngredient = `
INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
VALUES ($1, $2, $3)
`

type AddRecipeIngredientParams struct {
	RecipeID     int64
	IngredientID int64
	Amount       int32
}

func (q *Queries) AddRecipeIngredient(ctx context.Context, arg AddRecipeIngredientParams) error {
	_, err := q.db.Exec(ctx, addRecipeIngredient, arg.RecipeID, arg.IngredientID, arg.Amount)
	return err
}

const deleteRecipeIngredients = `
DELETE FROM recipe_ingredients WHERE recipe_id = $1
`

func (q *Queries) DeleteRecipeIngredients(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, deleteRecipeIngredients, recipeID)
	return err
}

const listRecipeIngredients = `
SELECT ri.ingredient_id, i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id = $1
ORDER BY i.name
`

type ListRecipeIngredientsRow struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

func (q *Queries) ListRecipeIngredients(ctx context.Context, recipeID int64) ([]ListRecipeIngredientsRow, error) {
	rows, err := q.db.Query(ctx, listRecipeIngredients, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRecipeIngredientsRow
	for rows.Next() {
		var r ListRecipeIngredientsRow
		if err := rows.Scan(&r.IngredientID, &r.Name, &r.MeasurementUnit, &r.Amount); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const addRecipeTag = `
INSERT INTO recipe_tags (recipe_id, tag_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type AddRecipeTagParams struct {
	RecipeID int64
	TagID    int64
}

func (q *Queries) AddRecipeTag(ctx context.Context, arg AddRecipeTagParams) error {
	_, err := q.db.Exec(ctx, addRecipeTag, arg.RecipeID, arg.TagID)
	return err
}

const deleteRecipeTags = `
DELETE FROM recipe_tags WHERE recipe_id = $1
`

func (q *Queries) DeleteRecipeTags(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, deleteRecipeTags, recipeID)
	return err
}

const listRecipeTags = `
SELECT t.id, t.name, t.color, t.slug
FROM recipe_tags rt
JOIN tags t ON t.id = rt.tag_id
WHERE rt.recipe_id = $1
ORDER BY t.id
`

func (q *Queries) ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listRecipeTags, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
