// Package testutil provides shared test helpers for setting up registries.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/folio/internal/imagemeta"
)

// TestRegistry creates a temporary SQLite image registry that is
// automatically cleaned up.
func TestRegistry(t *testing.T) *imagemeta.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := imagemeta.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
