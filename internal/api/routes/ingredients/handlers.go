// Package ingredients contains handlers for the ingredient catalog.
package ingredients

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/env"
)

const maxListLimit = 1000

type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func newIngredientResponse(ingredient database.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

// HandleListIngredients godoc
//
//	@Summary	List ingredients, optionally filtered by name prefix.
//	@Tags		Catalog
//
//	@Produce	json
//	@Param		name	query	string	false	"Name prefix"
//
//	@Success	200		{array}	IngredientResponse
//	@Router		/api/ingredients [GET]
func HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	env.Logger.DebugContext(ctx, "Listing ingredients")
	ingredients, err := env.Database.ListIngredients(ctx, database.ListIngredientsParams{
		NamePrefix: r.URL.Query().Get("name"),
		Limit:      maxListLimit,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list ingredients", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StorageUnavailable, "storage unavailable", requestID)
		return
	}

	response := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, newIngredientResponse(ingredient))
	}

	env.Logger.DebugContext(ctx, "Writing response")
	resp, err := json.Marshal(response)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// HandleGetIngredient godoc
//
//	@Summary	Get an ingredient.
//	@Tags		Catalog
//
//	@Produce	json
//	@Param		id	path		int	true	"Ingredient ID"
//
//	@Success	200	{object}	IngredientResponse
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/ingredients/{id} [GET]
func HandleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	ingredientID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse ingredient id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid ingredient id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving ingredient")
	ingredient, err := env.Database.GetIngredient(ctx, ingredientID)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "Ingredient does not exist", slog.Int64("ingredient_id", ingredientID))
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to retrieve ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	resp, err := json.Marshal(newIngredientResponse(ingredient))
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}
