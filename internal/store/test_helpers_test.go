package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new on-disk store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestCall creates a call with minimal required fields.
func createTestCall(id, session, variant string, seq int64) Call {
	return Call{
		Seq:          seq,
		ID:           id,
		Session:      session,
		Routine:      "vnorm",
		Variant:      variant,
		InputShapes:  []string{"(3,)"},
		OutputShapes: []string{"()"},
		Status:       StatusOK,
		CatalogHash:  "test-hash",
	}
}
