package engine

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

var registerOnce sync.Once

// Open opens a SQLite database using the modernc.org/sqlite driver. Vector
// functions are registered before the first connection is created, so every
// handle returned by Open can use vec_l2 and vec_cosine.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) {
	registerOnce.Do(registerVectorFunctions)
	return sql.Open("sqlite", dsn)
}
