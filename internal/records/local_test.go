package records

import (
	"context"
	"errors"
	"testing"

	"renonx-go/internal/cms"
	"renonx-go/internal/kv"
)

func newTestLocal(t *testing.T) (*LocalBackend, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewLocalBackend(store), store
}

func ids(docs []cms.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func TestLocalBackend_InsertPrepends(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := b.Insert(ctx, cms.CollectionSkills, cms.Document{"id": id}); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	docs, err := b.List(ctx, cms.CollectionSkills)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := ids(docs)
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("List() ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List() ids = %v, want %v", got, want)
			break
		}
	}
}

func TestLocalBackend_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	b.Insert(ctx, cms.CollectionBlogs, cms.Document{"id": "b1"})
	err := b.Insert(ctx, cms.CollectionBlogs, cms.Document{"id": "b1"})
	if !errors.Is(err, cms.ErrDuplicateID) {
		t.Errorf("Insert() error = %v, want ErrDuplicateID", err)
	}
}

func TestLocalBackend_ListEmpty(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	for _, c := range cms.Collections {
		docs, err := b.List(ctx, c)
		if err != nil {
			t.Fatalf("List(%s) error = %v", c, err)
		}
		if docs == nil || len(docs) != 0 {
			t.Errorf("List(%s) = %v, want empty non-nil", c, docs)
		}
	}
}

func TestLocalBackend_Settings(t *testing.T) {
	ctx := context.Background()
	b, store := newTestLocal(t)

	if err := b.Replace(ctx, cms.CollectionSettings, "ignored", cms.Document{"siteName": "One"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := b.Replace(ctx, cms.CollectionSettings, cms.SettingsID, cms.Document{"siteName": "Two"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	docs, err := b.List(ctx, cms.CollectionSettings)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(List()) = %d, want 1", len(docs))
	}
	if docs[0]["siteName"] != "Two" {
		t.Errorf("siteName = %v, want Two", docs[0]["siteName"])
	}

	raw, _ := store.Get(ctx, cms.KeySettings)
	if len(raw) == 0 || raw[0] != '{' {
		t.Errorf("settings stored as %q, want a JSON object", raw)
	}
}

func TestLocalBackend_DeleteByID(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	b.Insert(ctx, cms.CollectionProjects, cms.Document{"id": "p1"})
	b.Insert(ctx, cms.CollectionProjects, cms.Document{"id": "p2"})

	if err := b.DeleteByID(ctx, cms.CollectionProjects, "p1"); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if err := b.DeleteByID(ctx, cms.CollectionProjects, "missing"); err != nil {
		t.Fatalf("DeleteByID(missing) error = %v", err)
	}

	docs, _ := b.List(ctx, cms.CollectionProjects)
	if got := ids(docs); len(got) != 1 || got[0] != "p2" {
		t.Errorf("List() ids = %v, want [p2]", got)
	}
}

func TestLocalBackend_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	b.Insert(ctx, cms.CollectionProjects, cms.Document{"id": "p1", "title": "Old", "link": "#"})

	t.Run("merges fields", func(t *testing.T) {
		if err := b.UpdatePartial(ctx, cms.CollectionProjects, "p1", cms.Document{"title": "New"}); err != nil {
			t.Fatalf("UpdatePartial() error = %v", err)
		}
		docs, _ := b.List(ctx, cms.CollectionProjects)
		if docs[0]["title"] != "New" {
			t.Errorf("title = %v, want New", docs[0]["title"])
		}
		if docs[0]["link"] != "#" {
			t.Errorf("link = %v, want unchanged #", docs[0]["link"])
		}
	})

	t.Run("missing id", func(t *testing.T) {
		err := b.UpdatePartial(ctx, cms.CollectionProjects, "nope", cms.Document{"title": "x"})
		if !errors.Is(err, cms.ErrNotFound) {
			t.Errorf("UpdatePartial() error = %v, want ErrNotFound", err)
		}
	})
}

func TestLocalBackend_ReplaceUpserts(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	b.Insert(ctx, cms.CollectionSkills, cms.Document{"id": "1", "name": "Go"})
	if err := b.Replace(ctx, cms.CollectionSkills, "1", cms.Document{"name": "Golang"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := b.Replace(ctx, cms.CollectionSkills, "2", cms.Document{"name": "Rust"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	docs, _ := b.List(ctx, cms.CollectionSkills)
	if len(docs) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(docs))
	}
	byID := map[string]cms.Document{}
	for _, d := range docs {
		byID[d.ID()] = d
	}
	if byID["1"]["name"] != "Golang" {
		t.Errorf("skill 1 name = %v, want Golang", byID["1"]["name"])
	}
	if byID["2"]["name"] != "Rust" {
		t.Errorf("skill 2 name = %v, want Rust", byID["2"]["name"])
	}
}

func TestLocalBackend_CorruptValue(t *testing.T) {
	ctx := context.Background()
	b, store := newTestLocal(t)

	store.Set(ctx, cms.KeySkills, []byte("not json"))
	if _, err := b.List(ctx, cms.CollectionSkills); err == nil {
		t.Error("List() expected error for corrupt value")
	}
}

func TestLocalBackend_UnknownCollection(t *testing.T) {
	b, _ := newTestLocal(t)
	if _, err := b.List(context.Background(), cms.Collection("logs")); err == nil {
		t.Error("List() expected error for unknown collection")
	}
}
