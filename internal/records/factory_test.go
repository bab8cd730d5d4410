package records

import (
	"context"
	"testing"

	"renonx-go/internal/config"
	"renonx-go/internal/kv"
)

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	defer store.Close()

	t.Run("local backend", func(t *testing.T) {
		got, err := NewFromConfig(ctx, config.BackendConfig{Type: "local"}, store)
		if err != nil {
			t.Fatalf("NewFromConfig() unexpected error: %v", err)
		}
		if _, ok := got.(*LocalBackend); !ok {
			t.Errorf("NewFromConfig() = %T, want *LocalBackend", got)
		}
	})

	t.Run("mongo backend without uri", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")
		got, err := NewFromConfig(ctx, config.BackendConfig{Type: "mongo"}, store)
		if err == nil {
			t.Error("NewFromConfig() expected error for missing uri, got nil")
		}
		if got != nil {
			t.Error("NewFromConfig() should return nil on error")
		}
	})

	t.Run("unknown backend type", func(t *testing.T) {
		got, err := NewFromConfig(ctx, config.BackendConfig{Type: "firestore"}, store)
		if err == nil {
			t.Error("NewFromConfig() expected error for unknown type, got nil")
		}
		if got != nil {
			t.Error("NewFromConfig() should return nil on error")
		}
	})
}
