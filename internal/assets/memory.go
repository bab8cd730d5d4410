package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"renonx-go/internal/cms"
)

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryBucket is an in-memory implementation of cms.AssetBucket.
// It is useful for testing and is safe for concurrent use.
type MemoryBucket struct {
	baseURL string
	objects map[string]memoryObject
	mu      sync.RWMutex
}

// NewMemoryBucket creates an empty bucket whose URLs are rooted at baseURL.
func NewMemoryBucket(baseURL string) *MemoryBucket {
	return &MemoryBucket{
		baseURL: baseURL,
		objects: make(map[string]memoryObject),
	}
}

func (m *MemoryBucket) Put(_ context.Context, name string, contentType string, r io.Reader, size int64) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read asset: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[name] = memoryObject{contentType: contentType, data: data}
	return nil
}

func (m *MemoryBucket) Get(_ context.Context, name string, w io.Writer) (string, error) {
	m.mu.RLock()
	obj, ok := m.objects[name]
	m.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("asset %s: %w", name, cms.ErrNotFound)
	}
	if _, err := io.Copy(w, bytes.NewReader(obj.data)); err != nil {
		return "", fmt.Errorf("failed to write asset: %w", err)
	}
	return obj.contentType, nil
}

func (m *MemoryBucket) URL(name string) string {
	return servedURL(m.baseURL, name)
}

// ValidateSetup always succeeds for the in-memory bucket.
func (m *MemoryBucket) ValidateSetup(context.Context) error {
	return nil
}

// Len returns the number of stored objects.
func (m *MemoryBucket) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ cms.AssetBucket = (*MemoryBucket)(nil)
