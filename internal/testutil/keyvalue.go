package testutil

import (
	"testing"

	"renonx-go/internal/kv"
)

// NewTestKeyValue creates an in-memory SQLite key-value store with migrations applied.
// The store is automatically closed when the test completes.
func NewTestKeyValue(t *testing.T) *kv.SQLiteStore {
	t.Helper()

	s, err := kv.NewSQLiteStore(":memory:", FixedClock())
	if err != nil {
		t.Fatalf("failed to open key-value store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}
