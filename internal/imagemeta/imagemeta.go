// Package imagemeta provides a SQLite-backed registry of image dimensions.
// Collaborators register width/height once at upload time; pagination
// requests then resolve [IMG:id] tokens against the registry instead of
// resending the full metadata map on every call.
package imagemeta

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/folio/internal/models"
)

// Registry defines the image-dimension store operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type Registry interface {
	Put(id string, meta models.ImageMeta) error
	Get(id string) (models.ImageMeta, error)
	Delete(id string) error
	List() (map[string]models.ImageMeta, error)
	Close() error
}

// Verify *DB satisfies Registry at compile time.
var _ Registry = (*DB)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS images (
	id         TEXT PRIMARY KEY,
	width      REAL NOT NULL,
	height     REAL NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// DB wraps a sql.DB with registry operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("imagemeta: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("imagemeta: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("imagemeta: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
