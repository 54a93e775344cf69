package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s := newStore(t)
	content := []byte("png bytes here")
	if err := s.Write("pic.png", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("pic.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Read = %q, want %q", got, content)
	}
}

func TestStore_WriteOverwritesAtomically(t *testing.T) {
	s := newStore(t)
	if err := s.Write("a.png", []byte("old")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write("a.png", []byte("new")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Read("a.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Read = %q, want %q", got, "new")
	}
	// No temp files left behind.
	entries, err := os.ReadDir(s.Root())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".folio-tmp-") {
			t.Errorf("stale temp file %s", e.Name())
		}
	}
}

func TestStore_RejectsTraversal(t *testing.T) {
	s := newStore(t)
	for _, name := range []string{"", "../evil", "a/b.png", "..", "/etc/passwd"} {
		if err := s.Write(name, []byte("x")); err == nil {
			t.Errorf("Write(%q) accepted an unsafe name", name)
		}
		if _, err := s.Read(name); err == nil {
			t.Errorf("Read(%q) accepted an unsafe name", name)
		}
	}
}

func TestStore_Delete(t *testing.T) {
	s := newStore(t)
	if err := s.Write("gone.png", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Delete("gone.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("gone.png"); err == nil {
		t.Error("Read succeeded after Delete")
	}
}

func TestStore_PathStaysUnderRoot(t *testing.T) {
	s := newStore(t)
	p, err := s.Path("file.png")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if filepath.Dir(p) != s.Root() {
		t.Errorf("Path = %q, not directly under root %q", p, s.Root())
	}
}
