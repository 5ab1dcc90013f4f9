// Package database
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Database struct {
	Querier

	Pool Pool
}

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{
		Querier: New(pool),
		Pool:    pool,
	}
}

// EnsureSchema applies the embedded schema when it is not detected.
func (d *Database) EnsureSchema(ctx context.Context) error {
	exists, err := d.CheckUsersTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	if err := d.ApplySchema(ctx); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}

// RecipeIngredientInput pairs a catalog ingredient with its amount for
// a recipe write.
type RecipeIngredientInput struct {
	IngredientID int64
	Amount       int32
}

// CreateRecipeWithRelations creates the recipe and its ingredient and
// tag join rows in one transaction.
func (d *Database) CreateRecipeWithRelations(
	ctx context.Context,
	arg CreateRecipeParams,
	ingredients []RecipeIngredientInput,
	tagIDs []int64,
) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	qtx := New(tx)
	recipeID, err := qtx.CreateRecipe(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("creating recipe: %w", err)
	}
	if err := writeRelations(ctx, qtx, recipeID, ingredients, tagIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return recipeID, nil
}

// UpdateRecipeWithRelations rewrites the recipe row and replaces its
// join rows in one transaction. Returns the number of recipe rows
// updated, zero when the recipe does not exist.
func (d *Database) UpdateRecipeWithRelations(
	ctx context.Context,
	arg UpdateRecipeParams,
	ingredients []RecipeIngredientInput,
	tagIDs []int64,
) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	qtx := New(tx)
	rows, err := qtx.UpdateRecipe(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("updating recipe: %w", err)
	}
	if rows == 0 {
		return 0, nil
	}

	if err := qtx.DeleteRecipeIngredients(ctx, arg.ID); err != nil {
		return 0, fmt.Errorf("clearing recipe ingredients: %w", err)
	}
	if err := qtx.DeleteRecipeTags(ctx, arg.ID); err != nil {
		return 0, fmt.Errorf("clearing recipe tags: %w", err)
	}
	if err := writeRelations(ctx, qtx, arg.ID, ingredients, tagIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return rows, nil
}

func writeRelations(
	ctx context.Context,
	qtx *Queries,
	recipeID int64,
	ingredients []RecipeIngredientInput,
	tagIDs []int64,
) error {
	for _, ing := range ingredients {
		err := qtx.AddRecipeIngredient(ctx, AddRecipeIngredientParams{
			RecipeID:     recipeID,
			IngredientID: ing.IngredientID,
			Amount:       ing.Amount,
		})
		if err != nil {
			return fmt.Errorf("adding recipe ingredient %d: %w", ing.IngredientID, err)
		}
	}
	for _, tagID := range tagIDs {
		err := qtx.AddRecipeTag(ctx, AddRecipeTagParams{
			RecipeID: recipeID,
			TagID:    tagID,
		})
		if err != nil {
			return fmt.Errorf("adding recipe tag %d: %w", tagID, err)
		}
	}
	return nil
}
