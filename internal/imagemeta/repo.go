package imagemeta

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// Put inserts or replaces the dimensions for an image id.
func (db *DB) Put(id string, meta models.ImageMeta) error {
	_, err := db.conn.Exec(`
		INSERT INTO images (id, width, height, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			width      = excluded.width,
			height     = excluded.height,
			updated_at = excluded.updated_at
	`, id, meta.Width, meta.Height)
	if err != nil {
		return fmt.Errorf("imagemeta: put %s: %w", id, err)
	}
	return nil
}

// Get returns the dimensions for an image id, or apperr.ErrNotFound.
func (db *DB) Get(id string) (models.ImageMeta, error) {
	var meta models.ImageMeta
	err := db.conn.QueryRow(`SELECT width, height FROM images WHERE id = ?`, id).
		Scan(&meta.Width, &meta.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ImageMeta{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.ImageMeta{}, fmt.Errorf("imagemeta: get %s: %w", id, err)
	}
	return meta, nil
}

// Delete removes an image id from the registry. Deleting an unknown id is
// not an error.
func (db *DB) Delete(id string) error {
	if _, err := db.conn.Exec(`DELETE FROM images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("imagemeta: delete %s: %w", id, err)
	}
	return nil
}

// List returns every registered image keyed by id.
func (db *DB) List() (map[string]models.ImageMeta, error) {
	rows, err := db.conn.Query(`SELECT id, width, height FROM images ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("imagemeta: list: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.ImageMeta)
	for rows.Next() {
		var id string
		var meta models.ImageMeta
		if err := rows.Scan(&id, &meta.Width, &meta.Height); err != nil {
			return nil, fmt.Errorf("imagemeta: scan: %w", err)
		}
		out[id] = meta
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("imagemeta: rows: %w", err)
	}
	return out, nil
}
