// Package catalog loads the tag and ingredient reference data into
// the database at boot.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/platefeed/platefeed/internal/database"
	pfHttp "github.com/platefeed/platefeed/internal/http"
)

// TagSeed is one entry of the tag seed document.
type TagSeed struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientSeed is one entry of the ingredient seed document.
type IngredientSeed struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Loader fetches seed documents and writes them through the querier.
// Seeding is idempotent, existing rows are kept or updated in place.
type Loader struct {
	queries database.Querier
	client  *pfHttp.HTTP
}

func NewLoader(queries database.Querier, client *pfHttp.HTTP) *Loader {
	if client == nil {
		client = pfHttp.New(pfHttp.DefaultConfig())
	}
	return &Loader{queries: queries, client: client}
}

// fetch reads a seed document from an http(s) URL or a local path.
func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
		return data, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building seed request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching seed document: %w", err)
	}
	if err := pfHttp.ExpectStatus2xx(resp); err != nil {
		return nil, fmt.Errorf("fetching seed document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading seed document: %w", err)
	}
	return data, nil
}

// SeedTags loads the tag document and upserts every entry.
func (l *Loader) SeedTags(ctx context.Context, source string) (int, error) {
	data, err := l.fetch(ctx, source)
	if err != nil {
		return 0, err
	}

	var seeds []TagSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("decoding tag seeds: %w", err)
	}

	for _, seed := range seeds {
		err := l.queries.UpsertTag(ctx, database.UpsertTagParams{
			Name:  seed.Name,
			Color: seed.Color,
			Slug:  seed.Slug,
		})
		if err != nil {
			return 0, fmt.Errorf("upserting tag %q: %w", seed.Slug, err)
		}
	}
	return len(seeds), nil
}

// SeedIngredients loads the ingredient document and inserts every
// entry, keeping rows that already exist.
func (l *Loader) SeedIngredients(ctx context.Context, source string) (int, error) {
	data, err := l.fetch(ctx, source)
	if err != nil {
		return 0, err
	}

	var seeds []IngredientSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("decoding ingredient seeds: %w", err)
	}

	for _, seed := range seeds {
		err := l.queries.UpsertIngredient(ctx, database.UpsertIngredientParams{
			Name:            seed.Name,
			MeasurementUnit: seed.MeasurementUnit,
		})
		if err != nil {
			return 0, fmt.Errorf("upserting ingredient %q: %w", seed.Name, err)
		}
	}
	return len(seeds), nil
}
