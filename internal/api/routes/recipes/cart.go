package recipes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/shoppinglist"
)

const shoppingListTitle = "Shopping list"

// relationWriter abstracts the favorite and cart insert/delete pairs
// so one handler body serves both relations.
type relationWriter struct {
	name     string
	notFound apiError.ErrorCode
	add      func(r *http.Request, env *env.Env, userID, recipeID int64) (int64, error)
	remove   func(r *http.Request, env *env.Env, userID, recipeID int64) (int64, error)
}

var favoriteWriter = relationWriter{
	name:     "favorite",
	notFound: apiError.FavoriteNotFound,
	add: func(r *http.Request, env *env.Env, userID, recipeID int64) (int64, error) {
		return env.Database.AddFavorite(r.Context(), database.AddFavoriteParams{
			UserID:   userID,
			RecipeID: recipeID,
		})
	},
	remove: func(r *http.Request, env *env.Env, userID, recipeID int64) (int64, error) {
		return env.Database.DeleteFavorite(r.Context(), database.DeleteFavoriteParams{
			UserID:   userID,
			RecipeID: recipeID,
		})
	},
}

var cartWriter = relationWriter{
	name:     "shopping cart item",
	notFound: apiError.CartItemNotFound,
	add: func(r *http.Request, env *env.Env, userID, recipeID int64) (int64, error) {
		return env.Database.AddCartItem(r.Context(), database.AddCartItemParams{
			UserID:   userID,
			RecipeID: recipeID,
		})
	},
	remove: func(r *http.Request, env *env.Env, userID, recipeID int64) (int64, error) {
		return env.Database.DeleteCartItem(r.Context(), database.DeleteCartItemParams{
			UserID:   userID,
			RecipeID: recipeID,
		})
	},
}

// addRelation marks a recipe, responding with the compact recipe
// summary. Adding an already marked recipe succeeds, the relation
// insert is idempotent.
func addRelation(w http.ResponseWriter, r *http.Request, writer relationWriter) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}
	recipeID, err := recipeIDFromURL(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	// Resolve the recipe first so a missing one reports not found
	// rather than a foreign key failure.
	env.Logger.DebugContext(ctx, "Retrieving recipe")
	recipe, err := env.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Recipe does not exist", slog.Int64("recipe_id", recipeID))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Adding "+writer.name)
	if _, err := writer.add(r, env, userID, recipeID); err != nil {
		if database.IsForeignKeyViolation(err) {
			env.Logger.ErrorContext(ctx, "Recipe vanished during add", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
			return
		}
		env.Logger.ErrorContext(ctx, "Failed to add "+writer.name, slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusCreated, newRecipeSummary(recipe), env.Logger)
}

// removeRelation unmarks a recipe. A pair that was never marked
// reports not found.
func removeRelation(w http.ResponseWriter, r *http.Request, writer relationWriter) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}
	recipeID, err := recipeIDFromURL(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Removing "+writer.name)
	rows, err := writer.remove(r, env, userID, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to remove "+writer.name, slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "Relation does not exist", slog.Int64("recipe_id", recipeID))
		_ = apiError.EncodeError(w, writer.notFound, writer.name+" not found", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleFavorite godoc
//
//	@Summary	Favorite a recipe.
//	@Tags		Recipes
//
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//
//	@Success	201	{object}	RecipeSummary
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/favorite [POST]
func HandleFavorite(w http.ResponseWriter, r *http.Request) {
	addRelation(w, r, favoriteWriter)
}

// HandleUnfavorite godoc
//
//	@Summary	Remove a recipe from favorites.
//	@Tags		Recipes
//
//	@Param		id	path	int	true	"Recipe ID"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/favorite [DELETE]
func HandleUnfavorite(w http.ResponseWriter, r *http.Request) {
	removeRelation(w, r, favoriteWriter)
}

// HandleAddToCart godoc
//
//	@Summary	Add a recipe to the shopping cart.
//	@Tags		Recipes
//
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//
//	@Success	201	{object}	RecipeSummary
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/shopping_cart [POST]
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	addRelation(w, r, cartWriter)
}

// HandleRemoveFromCart godoc
//
//	@Summary	Remove a recipe from the shopping cart.
//	@Tags		Recipes
//
//	@Param		id	path	int	true	"Recipe ID"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/shopping_cart [DELETE]
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	removeRelation(w, r, cartWriter)
}

// HandleDownloadShoppingCart godoc
//
//	@Summary	Download the aggregated shopping list as a PDF.
//	@Tags		Recipes
//
//	@Produce	application/pdf
//	@Success	200
//	@Failure	503	{object}	apiError.Error	"Storage unavailable"
//	@Router		/api/recipes/download_shopping_cart [GET]
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	// Collect cart ingredients
	env.Logger.DebugContext(ctx, "Collecting shopping cart ingredients")
	rows, err := env.Database.ListShoppingCartIngredients(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to collect cart ingredients", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StorageUnavailable, "storage unavailable", requestID)
		return
	}
	cart := make([]shoppinglist.CartIngredient, 0, len(rows))
	for _, row := range rows {
		cart = append(cart, shoppinglist.CartIngredient{
			IngredientID:    row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	// Aggregate and render
	env.Logger.DebugContext(ctx, "Rendering shopping list")
	items := shoppinglist.Aggregate(cart)
	document, err := shoppinglist.RenderPDF(items, shoppingListTitle)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to render shopping list", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if env.Metrics != nil {
		env.Metrics.RecordShoppingListDownload(len(items))
	}

	// Write response
	env.Logger.DebugContext(ctx, "Writing response")
	w.Header().Set("Content-Type", shoppinglist.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+shoppinglist.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	if _, err := w.Write(document); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}
