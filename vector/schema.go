package vector

import (
	"context"
	"database/sql"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS collections (
    name       TEXT PRIMARY KEY,
    dimension  INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    content    TEXT,
    meta       TEXT,
    embedding  BLOB,
    PRIMARY KEY(collection, id)
);
`

// EnsureSchema creates the collections and records tables if they do not
// already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, storeSchema)
	return err
}
