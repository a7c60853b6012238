package vector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/engine"
)

// DatabaseFile is the SQLite file created inside a store directory.
const DatabaseFile = "docvec.sqlite3"

// Client is an open metadata store. It owns the underlying database handle
// until Close is called.
type Client struct {
	db   *sql.DB
	path string
}

// Open opens or creates a store in dir.
func Open(ctx context.Context, dir string) (*Client, error) {
	if dir == "" {
		return nil, fmt.Errorf("vector: store path is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("vector: create store directory: %w", err)
	}
	path := filepath.Join(dir, DatabaseFile)
	db, err := engine.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vector: open %s: %w", path, err)
	}
	// One process, one writer; a single connection also keeps ":memory:"
	// style databases coherent.
	db.SetMaxOpenConns(1)
	c, err := NewClient(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.path = path
	log.WithField("path", path).Debug("vector: store opened")
	return c, nil
}

// NewClient wraps an already open database, creating the schema if needed.
// Use engine.Open so that the vec_l2 function is available.
func NewClient(ctx context.Context, db *sql.DB) (*Client, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("vector: ensure schema: %w", err)
	}
	return &Client{db: db}, nil
}

// Path returns the database file path, empty for wrapped handles.
func (c *Client) Path() string { return c.path }

// Close releases the database handle.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// CreateCollection creates an empty collection.
func (c *Client) CreateCollection(ctx context.Context, name string) (*Collection, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	res, err := c.db.ExecContext(ctx, `INSERT INTO collections(name) VALUES(?) ON CONFLICT(name) DO NOTHING`, name)
	if err != nil {
		return nil, fmt.Errorf("vector: create collection %q: %w", name, err)
	}
	created, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if created == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCollectionExists, name)
	}
	return &Collection{client: c, name: name}, nil
}

// GetCollection returns an existing collection.
func (c *Client) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var dim int
	err := c.db.QueryRowContext(ctx, `SELECT dimension FROM collections WHERE name = ?`, name).Scan(&dim)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("vector: get collection %q: %w", name, err)
	}
	return &Collection{client: c, name: name, dimension: dim}, nil
}

// GetOrCreateCollection returns the named collection, creating it when absent.
func (c *Client) GetOrCreateCollection(ctx context.Context, name string) (*Collection, error) {
	col, err := c.GetCollection(ctx, name)
	if errors.Is(err, ErrCollectionNotFound) {
		return c.CreateCollection(ctx, name)
	}
	return col, err
}

// DeleteCollection removes a collection and all its records. It returns
// ErrCollectionNotFound when there is nothing to delete.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("vector: delete collection %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, name); err != nil {
		return fmt.Errorf("vector: delete records of %q: %w", name, err)
	}
	return tx.Commit()
}

// ListCollections returns collection names in alphabetical order.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("vector: collection name is empty")
	}
	return nil
}
