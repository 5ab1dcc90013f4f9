package database

import (
	"context"

	"github.com/platefeed/platefeed/internal/sql"
)

const checkUsersTableExists = `
SELECT EXISTS (
    SELECT 1 FROM information_schema.tables
    WHERE table_schema = 'public' AND table_name = 'users'
)
`

func (q *Queries) CheckUsersTableExists(ctx context.Context) (bool, error) {
	row := q.db.QueryRow(ctx, checkUsersTableExists)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

// ApplySchema runs the embedded schema against the database.
func (q *Queries) ApplySchema(ctx context.Context) error {
	_, err := q.db.Exec(ctx, sql.Schema())
	return err
}
