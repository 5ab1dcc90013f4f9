package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/platefeed/platefeed/internal/database"
)

func TestSeedTagsFromURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"Breakfast","color":"#E26C2D","slug":"breakfast"},
			{"name":"Dinner","color":"#49B64E","slug":"dinner"}
		]`))
	}))
	defer server.Close()

	mockDB := database.NewMockQuerier(ctrl)
	mockDB.EXPECT().
		UpsertTag(gomock.Any(), database.UpsertTagParams{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}).
		Return(nil)
	mockDB.EXPECT().
		UpsertTag(gomock.Any(), database.UpsertTagParams{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}).
		Return(nil)

	loader := NewLoader(mockDB, nil)
	count, err := loader.SeedTags(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("SeedTags() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 tags seeded, got %d", count)
	}
}

func TestSeedTagsRejectsErrorStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	loader := NewLoader(database.NewMockQuerier(ctrl), nil)
	if _, err := loader.SeedTags(context.Background(), server.URL); err == nil {
		t.Error("SeedTags() with 404 source succeeded, want error")
	}
}

func TestSeedIngredientsFromFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	path := filepath.Join(t.TempDir(), "ingredients.json")
	document := `[
		{"name":"flour","measurement_unit":"g"},
		{"name":"milk","measurement_unit":"ml"}
	]`
	if err := os.WriteFile(path, []byte(document), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	mockDB := database.NewMockQuerier(ctrl)
	mockDB.EXPECT().
		UpsertIngredient(gomock.Any(), database.UpsertIngredientParams{Name: "flour", MeasurementUnit: "g"}).
		Return(nil)
	mockDB.EXPECT().
		UpsertIngredient(gomock.Any(), database.UpsertIngredientParams{Name: "milk", MeasurementUnit: "ml"}).
		Return(nil)

	loader := NewLoader(mockDB, nil)
	count, err := loader.SeedIngredients(context.Background(), path)
	if err != nil {
		t.Fatalf("SeedIngredients() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 ingredients seeded, got %d", count)
	}
}

func TestSeedIngredientsMissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := NewLoader(database.NewMockQuerier(ctrl), nil)
	if _, err := loader.SeedIngredients(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("SeedIngredients() with missing file succeeded, want error")
	}
}

func TestSeedTagsMalformedDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	path := filepath.Join(t.TempDir(), "tags.json")
	if err := os.WriteFile(path, []byte(`{"not":"a list"}`), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	loader := NewLoader(database.NewMockQuerier(ctrl), nil)
	if _, err := loader.SeedTags(context.Background(), path); err == nil {
		t.Error("SeedTags() with malformed document succeeded, want error")
	}
}
