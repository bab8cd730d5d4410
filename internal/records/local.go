// Package records provides the cms.Backend implementations.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"renonx-go/internal/cms"
)

// localKeys maps each collection to its key-value slot.
var localKeys = map[cms.Collection]string{
	cms.CollectionSettings: cms.KeySettings,
	cms.CollectionSkills:   cms.KeySkills,
	cms.CollectionProjects: cms.KeyProjects,
	cms.CollectionBlogs:    cms.KeyBlogs,
}

// LocalBackend keeps every collection as one JSON value in a cms.KeyValue.
// Collections are arrays, newest insert first; settings is a single object.
// Each write reads, modifies and rewrites the whole collection.
type LocalBackend struct {
	kv cms.KeyValue
	mu sync.Mutex
}

var _ cms.Backend = (*LocalBackend)(nil)

// NewLocalBackend creates a LocalBackend over kv. kv stays owned by the caller.
func NewLocalBackend(kv cms.KeyValue) *LocalBackend {
	return &LocalBackend{kv: kv}
}

func (b *LocalBackend) List(ctx context.Context, c cms.Collection) ([]cms.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c == cms.CollectionSettings {
		doc, err := b.loadSettings(ctx)
		if err != nil || doc == nil {
			return []cms.Document{}, err
		}
		return []cms.Document{doc}, nil
	}
	return b.load(ctx, c)
}

func (b *LocalBackend) Insert(ctx context.Context, c cms.Collection, doc cms.Document) error {
	if c == cms.CollectionSettings {
		return b.Replace(ctx, c, cms.SettingsID, doc)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	docs, err := b.load(ctx, c)
	if err != nil {
		return err
	}
	id := doc.ID()
	if indexOf(docs, id) >= 0 {
		return fmt.Errorf("%s %s: %w", c, id, cms.ErrDuplicateID)
	}
	return b.save(ctx, c, append([]cms.Document{doc}, docs...))
}

// Replace overwrites the record with the given id. For settings the id is
// ignored: there is only one settings record.
func (b *LocalBackend) Replace(ctx context.Context, c cms.Collection, id string, doc cms.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c == cms.CollectionSettings {
		return b.saveSettings(ctx, doc)
	}

	docs, err := b.load(ctx, c)
	if err != nil {
		return err
	}
	doc = maps.Clone(doc)
	doc["id"] = id
	if i := indexOf(docs, id); i >= 0 {
		docs[i] = doc
	} else {
		docs = append([]cms.Document{doc}, docs...)
	}
	return b.save(ctx, c, docs)
}

func (b *LocalBackend) DeleteByID(ctx context.Context, c cms.Collection, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c == cms.CollectionSettings {
		key, err := keyFor(c)
		if err != nil {
			return err
		}
		if err := b.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("deleting settings: %w", err)
		}
		return nil
	}

	docs, err := b.load(ctx, c)
	if err != nil {
		return err
	}
	kept := make([]cms.Document, 0, len(docs))
	for _, d := range docs {
		if d.ID() != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		return nil
	}
	return b.save(ctx, c, kept)
}

func (b *LocalBackend) UpdatePartial(ctx context.Context, c cms.Collection, id string, fields cms.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c == cms.CollectionSettings {
		doc, err := b.loadSettings(ctx)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("settings: %w", cms.ErrNotFound)
		}
		maps.Copy(doc, fields)
		return b.saveSettings(ctx, doc)
	}

	docs, err := b.load(ctx, c)
	if err != nil {
		return err
	}
	i := indexOf(docs, id)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", c, id, cms.ErrNotFound)
	}
	maps.Copy(docs[i], fields)
	return b.save(ctx, c, docs)
}

// Close is a no-op; the key-value store is closed by its owner.
func (b *LocalBackend) Close() error { return nil }

func (b *LocalBackend) load(ctx context.Context, c cms.Collection) ([]cms.Document, error) {
	key, err := keyFor(c)
	if err != nil {
		return nil, err
	}
	raw, err := b.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c, err)
	}
	docs := []cms.Document{}
	if len(raw) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c, err)
	}
	return docs, nil
}

func (b *LocalBackend) save(ctx context.Context, c cms.Collection, docs []cms.Document) error {
	key, err := keyFor(c)
	if err != nil {
		return err
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c, err)
	}
	if err := b.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", c, err)
	}
	return nil
}

func (b *LocalBackend) loadSettings(ctx context.Context) (cms.Document, error) {
	raw, err := b.kv.Get(ctx, cms.KeySettings)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var doc cms.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return doc, nil
}

func (b *LocalBackend) saveSettings(ctx context.Context, doc cms.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := b.kv.Set(ctx, cms.KeySettings, data); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

func keyFor(c cms.Collection) (string, error) {
	key, ok := localKeys[c]
	if !ok {
		return "", fmt.Errorf("unknown collection: %s", c)
	}
	return key, nil
}

func indexOf(docs []cms.Document, id string) int {
	for i, d := range docs {
		if d.ID() == id {
			return i
		}
	}
	return -1
}
