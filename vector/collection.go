package vector

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Collection is a named set of records inside a Client.
type Collection struct {
	client    *Client
	name      string
	dimension int
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Dimension returns the vector dimension fixed by the first insert, 0 while
// the collection has never held a record.
func (c *Collection) Dimension() int { return c.dimension }

// Add inserts documents one statement at a time; there is no surrounding
// transaction. Each embedding is normalized before it is written. Document.ID
// must be set and unique within the collection.
func (c *Collection) Add(ctx context.Context, docs []Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return ids, fmt.Errorf("vector: Document.ID must be set")
		}
		if err := c.fixDimension(ctx, len(d.Embedding)); err != nil {
			return ids, fmt.Errorf("vector: add %s: %w", d.ID, err)
		}
		meta, err := encodeMetadata(d.Metadata)
		if err != nil {
			return ids, err
		}
		emb := EncodeEmbedding(Normalize(d.Embedding))
		_, err = c.client.db.ExecContext(ctx,
			`INSERT INTO records(collection, id, content, meta, embedding) VALUES(?, ?, ?, ?, ?)`,
			c.name, d.ID, d.Content, meta, emb)
		if err != nil {
			return ids, fmt.Errorf("vector: add %s: %w", d.ID, err)
		}
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (c *Collection) fixDimension(ctx context.Context, dim int) error {
	if dim == 0 {
		return fmt.Errorf("empty embedding")
	}
	if c.dimension == 0 {
		_, err := c.client.db.ExecContext(ctx, `UPDATE collections SET dimension = ? WHERE name = ? AND dimension = 0`, dim, c.name)
		if err != nil {
			return err
		}
		c.dimension = dim
		return nil
	}
	if dim != c.dimension {
		return fmt.Errorf("%w: got %d, collection %q has %d", ErrDimensionMismatch, dim, c.name, c.dimension)
	}
	return nil
}

type queryOptions struct {
	where map[string]any
}

// QueryOption customises Query.
type QueryOption func(*queryOptions)

// Where restricts Query to records whose metadata key equals value.
// Multiple Where options are combined with AND.
func Where(key string, value any) QueryOption {
	return func(o *queryOptions) {
		if o.where == nil {
			o.where = map[string]any{}
		}
		o.where[key] = value
	}
}

var metaKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Query normalizes queryEmbedding and returns up to k records ordered by
// ascending squared Euclidean distance. Embeddings are not loaded. k larger than the
// collection size returns every matching record.
func (c *Collection) Query(ctx context.Context, queryEmbedding []float32, k int, opts ...QueryOption) ([]Document, error) {
	if k <= 0 {
		return nil, nil
	}
	if c.dimension == 0 {
		return nil, nil
	}
	if len(queryEmbedding) != c.dimension {
		return nil, fmt.Errorf("%w: query has %d, collection %q has %d", ErrDimensionMismatch, len(queryEmbedding), c.name, c.dimension)
	}
	o := &queryOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var sb strings.Builder
	args := []any{EncodeEmbedding(Normalize(queryEmbedding)), c.name}
	sb.WriteString(`SELECT id, content, meta, vec_l2sq(embedding, ?) AS distance FROM records WHERE collection = ?`)
	keys := make([]string, 0, len(o.where))
	for key := range o.where {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !metaKey.MatchString(key) {
			return nil, fmt.Errorf("vector: invalid metadata key %q", key)
		}
		sb.WriteString(` AND json_extract(meta, ?) = ?`)
		args = append(args, "$."+key, o.where[key])
	}
	sb.WriteString(` ORDER BY distance ASC, rowid ASC LIMIT ?`)
	args = append(args, k)

	rows, err := c.client.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("vector: query %q: %w", c.name, err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var meta string
		if err := rows.Scan(&d.ID, &d.Content, &meta, &d.Distance); err != nil {
			return nil, err
		}
		if d.Metadata, err = decodeMetadata(meta); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns the records with the given IDs, including embeddings, in
// insertion order. With no IDs it returns the whole collection.
func (c *Collection) Get(ctx context.Context, ids ...string) ([]Document, error) {
	query := `SELECT id, content, meta, embedding FROM records WHERE collection = ?`
	args := []any{c.name}
	if len(ids) > 0 {
		query += ` AND id IN (?` + strings.Repeat(`, ?`, len(ids)-1) + `)`
		for _, id := range ids {
			args = append(args, id)
		}
	}
	query += ` ORDER BY rowid`

	rows, err := c.client.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("vector: get from %q: %w", c.name, err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var meta string
		var emb []byte
		if err := rows.Scan(&d.ID, &d.Content, &meta, &emb); err != nil {
			return nil, err
		}
		if d.Metadata, err = decodeMetadata(meta); err != nil {
			return nil, err
		}
		if d.Embedding, err = DecodeEmbedding(emb); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Count returns the number of records in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	var n int
	err := c.client.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE collection = ?`, c.name).Scan(&n)
	return n, err
}

// Delete removes records by ID.
func (c *Collection) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("vector: Delete called with empty id")
		}
		if _, err := c.client.db.ExecContext(ctx, `DELETE FROM records WHERE collection = ? AND id = ?`, c.name, id); err != nil {
			return err
		}
	}
	return nil
}
