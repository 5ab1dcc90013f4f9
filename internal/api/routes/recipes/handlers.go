// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/form"
	pfJson "github.com/platefeed/platefeed/internal/json"
	"github.com/platefeed/platefeed/internal/role"
)

const (
	maxUploadSize = 20 << 20 // ~ 20 MB

	defaultPageLimit = 10
	maxPageLimit     = 100
)

func recipeIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func isAdmin(r *http.Request) bool {
	authToken := token.AuthTokenFromCtx(r.Context())
	if authToken == nil {
		return false
	}
	claims, ok := authToken.Claims.(gojwt.MapClaims)
	if !ok {
		return false
	}
	roleClaim, _ := claims["role"].(string)
	return role.ToRole(roleClaim) >= role.RoleAdmin
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	resp, err := json.Marshal(body)
	if err != nil {
		logger.Error("Failed to marshal response", slog.Any("error", err))
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response", slog.Any("error", err))
	}
}

// buildRecipeResponse loads the recipe's relations and renders the
// full response. The favorite and cart flags are computed for the
// viewer, anonymous viewers always see false.
func buildRecipeResponse(
	r *http.Request,
	env *env.Env,
	recipe database.Recipe,
) (RecipeResponse, error) {
	ctx := r.Context()

	author, err := env.Database.GetUserByID(ctx, recipe.AuthorID)
	if err != nil {
		return RecipeResponse{}, err
	}
	tags, err := env.Database.ListRecipeTags(ctx, recipe.ID)
	if err != nil {
		return RecipeResponse{}, err
	}
	ingredients, err := env.Database.ListRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return RecipeResponse{}, err
	}

	response := RecipeResponse{
		ID: recipe.ID,
		Author: AuthorResponse{
			ID:        author.ID,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
		Name:        recipe.Name,
		Text:        recipe.Text,
		Image:       recipe.ImageUrl.String,
		CookingTime: recipe.CookingTime,
		Tags:        make([]TagResponse, 0, len(tags)),
		Ingredients: make([]RecipeIngredientResponse, 0, len(ingredients)),
	}
	for _, tag := range tags {
		response.Tags = append(response.Tags, TagResponse{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}
	for _, ingredient := range ingredients {
		response.Ingredients = append(response.Ingredients, RecipeIngredientResponse{
			ID:              ingredient.IngredientID,
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
			Amount:          ingredient.Amount,
		})
	}

	viewerID, viewerErr := token.UserIDFromCtx(ctx)
	if viewerErr != nil {
		return response, nil
	}
	response.IsFavorited, err = env.Database.IsFavorited(ctx, database.IsFavoritedParams{
		UserID:   viewerID,
		RecipeID: recipe.ID,
	})
	if err != nil {
		return RecipeResponse{}, err
	}
	response.IsInShoppingCart, err = env.Database.IsInShoppingCart(ctx, database.IsInShoppingCartParams{
		UserID:   viewerID,
		RecipeID: recipe.ID,
	})
	if err != nil {
		return RecipeResponse{}, err
	}
	return response, nil
}

// decodeWriteRequest decodes and validates the recipe write body
// shared by create and update.
func decodeWriteRequest(w http.ResponseWriter, r *http.Request, requestID string) (WriteRecipeRequest, bool) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	var request WriteRecipeRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := pfJson.Decode(&request, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return request, false
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeValidationError(w, err, requestID)
		return request, false
	}
	if id := request.duplicateIngredient(); id != 0 {
		env.Logger.ErrorContext(ctx, "Duplicate ingredient in request", slog.Int64("ingredient_id", id))
		_ = apiError.EncodeError(w, apiError.ValidationFailed, "duplicate ingredient in recipe", requestID)
		return request, false
	}
	return request, true
}

func ingredientInputs(request WriteRecipeRequest) []database.RecipeIngredientInput {
	inputs := make([]database.RecipeIngredientInput, 0, len(request.Ingredients))
	for _, ingredient := range request.Ingredients {
		inputs = append(inputs, database.RecipeIngredientInput{
			IngredientID: ingredient.ID,
			Amount:       ingredient.Amount,
		})
	}
	return inputs
}

// encodeRelationError maps foreign-key failures from recipe writes to
// the missing resource.
func encodeRelationError(w http.ResponseWriter, err error, requestID string) bool {
	if !database.IsForeignKeyViolation(err) {
		return false
	}
	constraint := database.ConstraintName(err)
	if strings.Contains(constraint, "tag") {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return true
	}
	_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
	return true
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//
//	@Accept		json
//	@Produce	json
//	@Param		request	body		WriteRecipeRequest	true	"Recipe"
//
//	@Success	201		{object}	RecipeResponse
//	@Failure	400		{object}	apiError.Error	"Validation failed"
//	@Failure	404		{object}	apiError.Error	"Referenced ingredient or tag missing"
//	@Router		/api/recipes [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAuthToken, "authentication required", requestID)
		return
	}

	request, ok := decodeWriteRequest(w, r, requestID)
	if !ok {
		return
	}

	// Create recipe with relations
	env.Logger.DebugContext(ctx, "Creating recipe")
	recipeID, err := env.Database.CreateRecipeWithRelations(ctx, database.CreateRecipeParams{
		AuthorID:    userID,
		Name:        request.Name,
		Text:        request.Text,
		CookingTime: request.CookingTime,
	}, ingredientInputs(request), request.Tags)
	if encodeRelationError(w, err, requestID) {
		env.Logger.ErrorContext(ctx, "Recipe references a missing resource", slog.Any("error", err))
		return
	} else if database.IsCheckViolation(err) {
		env.Logger.ErrorContext(ctx, "Recipe violates a constraint", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.ValidationFailed, "invalid recipe", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Assemble the created recipe
	recipe, err := env.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve created recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	response, err := buildRecipeResponse(r, env, recipe)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to assemble recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusCreated, response, env.Logger)
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe.
//	@Tags		Recipes
//
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//
//	@Success	200	{object}	RecipeResponse
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	recipeID, err := recipeIDFromURL(r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

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

	response, err := buildRecipeResponse(r, env, recipe)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to assemble recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, response, env.Logger)
}

// HandleListRecipes godoc
//
//	@Summary	List recipes with filters.
//	@Tags		Recipes
//
//	@Produce	json
//	@Param		author					query	int		false	"Author ID"
//	@Param		tags					query	string	false	"Tag slug, repeatable"
//	@Param		is_favorited			query	int		false	"Only the caller's favorites"
//	@Param		is_in_shopping_cart		query	int		false	"Only the caller's cart"
//	@Param		limit					query	int		false	"Page size"
//	@Param		offset					query	int		false	"Page offset"
//
//	@Success	200						{array}	RecipeResponse
//	@Router		/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	params := database.ListRecipesParams{
		TagSlugs: r.URL.Query()["tags"],
		Limit:    defaultPageLimit,
	}
	query := r.URL.Query()
	if raw := query.Get("author"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to parse author filter", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.BadRequest, "invalid author filter", requestID)
			return
		}
		params.AuthorID = pgtype.Int8{Int64: authorID, Valid: true}
	}
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 {
			params.Limit = int32(parsed)
		}
	}
	if params.Limit > maxPageLimit {
		params.Limit = maxPageLimit
	}
	if raw := query.Get("offset"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed >= 0 {
			params.Offset = int32(parsed)
		}
	}

	// The caller-relative filters silently drop to unfiltered for
	// anonymous requests.
	viewerID, viewerErr := token.UserIDFromCtx(ctx)
	if viewerErr == nil {
		params.UserID = pgtype.Int8{Int64: viewerID, Valid: true}
		params.OnlyFavorited = query.Get("is_favorited") == "1"
		params.OnlyInCart = query.Get("is_in_shopping_cart") == "1"
	}

	env.Logger.DebugContext(ctx, "Listing recipes")
	recipes, err := env.Database.ListRecipes(ctx, params)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StorageUnavailable, "storage unavailable", requestID)
		return
	}

	response := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		entry, err := buildRecipeResponse(r, env, recipe)
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to assemble recipe", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		response = append(response, entry)
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, response, env.Logger)
}

// HandleUpdateRecipe godoc
//
//	@Summary	Update a recipe.
//	@Tags		Recipes
//
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Recipe ID"
//	@Param		request	body		WriteRecipeRequest	true	"Recipe"
//
//	@Success	200		{object}	RecipeResponse
//	@Failure	403		{object}	apiError.Error	"Caller does not own recipe"
//	@Failure	404		{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id} [PATCH]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
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

	if !requireOwnership(w, r, recipeID, userID, requestID) {
		return
	}

	request, ok := decodeWriteRequest(w, r, requestID)
	if !ok {
		return
	}

	// Update recipe with relations
	env.Logger.DebugContext(ctx, "Updating recipe")
	rows, err := env.Database.UpdateRecipeWithRelations(ctx, database.UpdateRecipeParams{
		ID:          recipeID,
		Name:        request.Name,
		Text:        request.Text,
		CookingTime: request.CookingTime,
	}, ingredientInputs(request), request.Tags)
	if encodeRelationError(w, err, requestID) {
		env.Logger.ErrorContext(ctx, "Recipe references a missing resource", slog.Any("error", err))
		return
	} else if database.IsCheckViolation(err) {
		env.Logger.ErrorContext(ctx, "Recipe violates a constraint", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.ValidationFailed, "invalid recipe", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to update recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "Recipe does not exist", slog.Int64("recipe_id", recipeID))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	}

	// Assemble the updated recipe
	recipe, err := env.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve updated recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	response, err := buildRecipeResponse(r, env, recipe)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to assemble recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, response, env.Logger)
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe.
//	@Tags		Recipes
//
//	@Param		id	path	int	true	"Recipe ID"
//
//	@Success	204
//	@Failure	403	{object}	apiError.Error	"Caller does not own recipe"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id} [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
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

	if !requireOwnership(w, r, recipeID, userID, requestID) {
		return
	}

	// Fetch the recipe first so the image file can be removed after
	// the row is gone.
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

	env.Logger.DebugContext(ctx, "Deleting recipe")
	rows, err := env.Database.DeleteRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if rows == 0 {
		env.Logger.ErrorContext(ctx, "Recipe does not exist", slog.Int64("recipe_id", recipeID))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	}

	if recipe.ImageUrl.Valid && env.FileStore != nil {
		if err := env.FileStore.DeleteRecipeImage(recipe.ImageUrl.String); err != nil {
			env.Logger.WarnContext(ctx, "Failed to delete recipe image", slog.Any("error", err))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUploadRecipeImage godoc
//
//	@Summary	Upload a recipe image.
//	@Tags		Recipes
//
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		int		true	"Recipe ID"
//	@Param		image	formData	file	true	"Recipe image (JPEG/PNG/WebP/GIF)"
//
//	@Success	200		{object}	RecipeSummary
//	@Failure	400		{object}	apiError.Error	"Bad request / unsupported file type"
//	@Failure	403		{object}	apiError.Error	"Caller does not own recipe"
//	@Failure	404		{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/image [POST]
func HandleUploadRecipeImage(w http.ResponseWriter, r *http.Request) {
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

	if !requireOwnership(w, r, recipeID, userID, requestID) {
		return
	}

	// Read upload
	env.Logger.DebugContext(ctx, "Reading upload")
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		env.Logger.ErrorContext(ctx, "failed to parse multipart form", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "request too large", requestID)
		return
	}
	uploadedImage, err := form.ReadImage(r, "image")
	if errors.Is(err, form.ErrNoImageUploaded) {
		env.Logger.ErrorContext(ctx, "no image uploaded", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "image is required", requestID)
		return
	} else if errors.Is(err, form.ErrUnsupportedMimeType) {
		env.Logger.ErrorContext(ctx, "unsupported file type", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid file type", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to read recipe image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Store file
	env.Logger.DebugContext(ctx, "Storing image")
	urlPath, _, err := env.FileStore.WriteRecipeImage(recipeID, uploadedImage.Suffix, uploadedImage.Data)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to store recipe image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Update recipe row
	env.Logger.DebugContext(ctx, "Updating recipe image")
	err = env.Database.UpdateRecipeImage(ctx, database.UpdateRecipeImageParams{
		ID:       recipeID,
		ImageUrl: pgtype.Text{String: urlPath, Valid: true},
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to update recipe image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipe, err := env.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	writeJSON(w, http.StatusOK, newRecipeSummary(recipe), env.Logger)
}

// requireOwnership rejects callers that neither own the recipe nor
// hold the admin role. A missing recipe reports not found rather than
// forbidden.
func requireOwnership(
	w http.ResponseWriter,
	r *http.Request,
	recipeID, userID int64,
	requestID string,
) bool {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	env.Logger.DebugContext(ctx, "Checking recipe ownership")
	owns, err := env.Database.CheckRecipeOwnership(ctx, database.CheckRecipeOwnershipParams{
		ID:       recipeID,
		AuthorID: userID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to check recipe ownership", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return false
	}
	if owns || isAdmin(r) {
		return true
	}

	if _, err := env.Database.GetRecipe(ctx, recipeID); errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Recipe does not exist", slog.Int64("recipe_id", recipeID))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return false
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return false
	}

	env.Logger.ErrorContext(ctx, "Caller does not own recipe", slog.Int64("recipe_id", recipeID))
	_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "caller does not own recipe", requestID)
	return false
}
