package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/mock/gomock"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
	"github.com/platefeed/platefeed/internal/api/token"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/log"
)

func newCartRequest(t *testing.T, method, target, recipeID string, userID int64, mockDB database.Querier) *http.Request {
	t.Helper()

	ctx := context.Background()
	ctx = requestid.InjectRequestID(ctx, 12345)
	ctx = token.UserIDWithCtx(ctx, userID)
	ctx = env.WithCtx(ctx, &env.Env{
		Logger: log.NullLogger(),
		Database: &database.Database{
			Querier: mockDB,
		},
	})

	if recipeID != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", recipeID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return httptest.NewRequest(method, target, nil).WithContext(ctx)
}

func TestHandleFavorite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)

	recipe := database.Recipe{
		ID:          7,
		AuthorID:    3,
		Name:        "Borscht",
		CookingTime: 45,
	}

	tests := []struct {
		name       string
		recipeID   string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name:     "successful favorite",
			recipeID: "7",
			setup: func() {
				mockDB.EXPECT().
					GetRecipe(gomock.Any(), int64(7)).
					Return(recipe, nil)
				mockDB.EXPECT().
					AddFavorite(gomock.Any(), database.AddFavoriteParams{UserID: 42, RecipeID: 7}).
					Return(int64(1), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:     "favoriting twice succeeds",
			recipeID: "7",
			setup: func() {
				mockDB.EXPECT().
					GetRecipe(gomock.Any(), int64(7)).
					Return(recipe, nil)
				mockDB.EXPECT().
					AddFavorite(gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:     "recipe does not exist",
			recipeID: "99",
			setup: func() {
				mockDB.EXPECT().
					GetRecipe(gomock.Any(), int64(99)).
					Return(database.Recipe{}, pgx.ErrNoRows)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
		{
			name:       "malformed recipe id",
			recipeID:   "seven",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.BadRequest,
		},
		{
			name:     "database error",
			recipeID: "7",
			setup: func() {
				mockDB.EXPECT().
					GetRecipe(gomock.Any(), int64(7)).
					Return(database.Recipe{}, errors.New("database connection failed"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiError.InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newCartRequest(t, http.MethodPost, "/api/recipes/7/favorite", tt.recipeID, 42, mockDB)
			rec := httptest.NewRecorder()
			HandleFavorite(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				var apiErr apiError.Error
				if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
				return
			}

			var summary RecipeSummary
			if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if summary.ID != recipe.ID {
				t.Errorf("expected recipe ID %d, got %d", recipe.ID, summary.ID)
			}
			if summary.Name != recipe.Name {
				t.Errorf("expected recipe name %s, got %s", recipe.Name, summary.Name)
			}
		})
	}
}

func TestHandleRemoveFromCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)

	tests := []struct {
		name       string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "successful removal",
			setup: func() {
				mockDB.EXPECT().
					DeleteCartItem(gomock.Any(), database.DeleteCartItemParams{UserID: 42, RecipeID: 7}).
					Return(int64(1), nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "recipe was never in the cart",
			setup: func() {
				mockDB.EXPECT().
					DeleteCartItem(gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.CartItemNotFound,
		},
		{
			name: "database error",
			setup: func() {
				mockDB.EXPECT().
					DeleteCartItem(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database connection failed"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiError.InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newCartRequest(t, http.MethodDelete, "/api/recipes/7/shopping_cart", "7", 42, mockDB)
			rec := httptest.NewRecorder()
			HandleRemoveFromCart(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				var apiErr apiError.Error
				if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
			}
		})
	}
}

func TestHandleDownloadShoppingCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := database.NewMockQuerier(ctrl)

	tests := []struct {
		name       string
		setup      func()
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "successful download",
			setup: func() {
				mockDB.EXPECT().
					ListShoppingCartIngredients(gomock.Any(), int64(42)).
					Return([]database.ListShoppingCartIngredientsRow{
						{IngredientID: 1, Name: "Flour", MeasurementUnit: "g", Amount: 200},
						{IngredientID: 1, Name: "Flour", MeasurementUnit: "g", Amount: 100},
						{IngredientID: 2, Name: "Sugar", MeasurementUnit: "g", Amount: 50},
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "empty cart still renders a document",
			setup: func() {
				mockDB.EXPECT().
					ListShoppingCartIngredients(gomock.Any(), int64(42)).
					Return([]database.ListShoppingCartIngredientsRow{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "storage unavailable",
			setup: func() {
				mockDB.EXPECT().
					ListShoppingCartIngredients(gomock.Any(), int64(42)).
					Return(nil, errors.New("database connection failed"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apiError.StorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newCartRequest(t, http.MethodGet, "/api/recipes/download_shopping_cart", "", 42, mockDB)
			rec := httptest.NewRecorder()
			HandleDownloadShoppingCart(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				var apiErr apiError.Error
				if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if apiErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, apiErr.Code)
				}
				return
			}

			if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
				t.Errorf("expected content type application/pdf, got %s", got)
			}
			if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=shoppingcart.pdf" {
				t.Errorf("unexpected content disposition %s", got)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
				t.Error("response body is not a PDF document")
			}
		})
	}
}
