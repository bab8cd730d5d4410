package testutil

import (
	"context"
	"testing"

	"renonx-go/internal/assets"
	"renonx-go/internal/cms"
	"renonx-go/internal/records"
)

// TestStore bundles a ContentStore with the collaborators tests inspect.
type TestStore struct {
	Store   *cms.ContentStore
	State   *cms.State
	KV      cms.KeyValue
	Backend cms.Backend
	Bucket  cms.AssetBucket
	Clock   *StubClock
	IDs     *StubIDGenerator
}

// NewTestStore creates a ContentStore over a local backend, an in-memory
// SQLite key-value store and a memory bucket. Nothing is seeded.
func NewTestStore(t *testing.T) *TestStore {
	t.Helper()

	kvStore := NewTestKeyValue(t)
	return NewTestStoreWith(t, kvStore, records.NewLocalBackend(kvStore), assets.NewMemoryBucket(""))
}

// NewTestStoreWith creates a ContentStore over the given collaborators.
// bucket may be nil.
func NewTestStoreWith(t *testing.T, kvStore cms.KeyValue, backend cms.Backend, bucket cms.AssetBucket) *TestStore {
	t.Helper()

	clock := FixedClock()
	ids := NewStubIDGenerator()
	logger := cms.NewNopLogger()

	state, err := cms.NewState(context.Background(), kvStore, clock, ids, logger)
	if err != nil {
		t.Fatalf("failed to create state: %v", err)
	}

	return &TestStore{
		Store:   cms.NewContentStore(backend, state, bucket, logger, clock, ids),
		State:   state,
		KV:      kvStore,
		Backend: backend,
		Bucket:  bucket,
		Clock:   clock,
		IDs:     ids,
	}
}
