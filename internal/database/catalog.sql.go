package database

import "context"

const upsertTag = `
INSERT INTO tags (name, color, slug)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color
`

type UpsertTagParams struct {
	Name  string
	Color string
	Slug  string
}

func (q *Queries) UpsertTag(ctx context.Context, arg UpsertTagParams) error {
	_, err := q.db.Exec(ctx, upsertTag, arg.Name, arg.Color, arg.Slug)
	return err
}

const getTag = `
SELECT id, name, color, slug FROM tags WHERE id = $1
`

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	row := q.db.QueryRow(ctx, getTag, id)
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	return t, err
}

const listTags = `
SELECT id, name, color, slug FROM tags ORDER BY id
`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags)
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

const upsertIngredient = `
INSERT INTO ingredients (name, measurement_unit)
VALUES ($1, $2)
ON CONFLICT (name, measurement_unit) DO NOTHING
`

type UpsertIngredientParams struct {
	Name            string
	MeasurementUnit string
}

func (q *Queries) UpsertIngredient(ctx context.Context, arg UpsertIngredientParams) error {
	_, err := q.db.Exec(ctx, upsertIngredient, arg.Name, arg.MeasurementUnit)
	return err
}

const getIngredient = `
SELECT id, name, measurement_unit FROM ingredients WHERE id = $1
`

func (q *Queries) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	row := q.db.QueryRow(ctx, getIngredient, id)
	var i Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	return i, err
}

const listIngredients = `
SELECT id, name, measurement_unit
FROM ingredients
WHERE $1::text = '' OR name ILIKE $1 || '%'
ORDER BY name, measurement_unit
LIMIT $2
`

type ListIngredientsParams struct {
	NamePrefix string
	Limit      int32
}

func (q *Queries) ListIngredients(ctx context.Context, arg ListIngredientsParams) ([]Ingredient, error) {
	rows, err := q.db.Query(ctx, listIngredients, arg.NamePrefix, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ingredient
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countIngredients = `
SELECT COUNT(*) FROM ingredients
`

func (q *Queries) CountIngredients(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countIngredients)
	var count int64
	err := row.Scan(&count)
	return count, err
}
