package cms_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"renonx-go/internal/assets"
	"renonx-go/internal/cms"
	"renonx-go/internal/kv"
	"renonx-go/internal/records"
	"renonx-go/internal/testutil"
)

func imageUpload(name, contentType string, data []byte) cms.ImageUpload {
	return cms.ImageUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}
}

func TestContentStore_UploadImage(t *testing.T) {
	ctx := context.Background()
	data := []byte("\x89PNG")

	t.Run("stores image and returns its url", func(t *testing.T) {
		ts := testutil.NewTestStore(t)

		url, err := ts.Store.UploadImage(ctx, imageUpload("Photo.PNG", "image/png", data))
		if err != nil {
			t.Fatalf("UploadImage() error = %v", err)
		}

		name := fmt.Sprintf("%d-id1.png", ts.Clock.Now().UnixMilli())
		if url != "/assets/"+name {
			t.Errorf("UploadImage() = %q, want /assets/%s", url, name)
		}

		var buf bytes.Buffer
		ct, err := ts.Bucket.Get(ctx, name, &buf)
		if err != nil {
			t.Fatalf("bucket Get() error = %v", err)
		}
		if ct != "image/png" || !bytes.Equal(buf.Bytes(), data) {
			t.Errorf("stored object = %q (%s)", buf.Bytes(), ct)
		}
		if !hasLog(ts.Store.GetLogs(), cms.LevelSuccess, "Image uploaded: "+name) {
			t.Error("journal missing upload entry")
		}
	})

	t.Run("extension from media type when filename has none", func(t *testing.T) {
		ts := testutil.NewTestStore(t)

		url, err := ts.Store.UploadImage(ctx, imageUpload("blob", "image/gif", data))
		if err != nil {
			t.Fatalf("UploadImage() error = %v", err)
		}
		if !strings.HasSuffix(url, ".gif") {
			t.Errorf("UploadImage() = %q, want .gif suffix", url)
		}
	})

	t.Run("content type parameters are accepted", func(t *testing.T) {
		ts := testutil.NewTestStore(t)
		if _, err := ts.Store.UploadImage(ctx, imageUpload("a.svg", "image/svg+xml; charset=utf-8", data)); err != nil {
			t.Errorf("UploadImage() error = %v", err)
		}
	})

	t.Run("successive uploads get distinct names", func(t *testing.T) {
		ts := testutil.NewTestStore(t)
		first, _ := ts.Store.UploadImage(ctx, imageUpload("a.png", "image/png", data))
		second, _ := ts.Store.UploadImage(ctx, imageUpload("a.png", "image/png", data))
		if first == second {
			t.Errorf("both uploads resolved to %q", first)
		}
	})

	for _, ct := range []string{"application/pdf", "text/html", "", "not a media type"} {
		t.Run("rejects "+ct, func(t *testing.T) {
			store := kv.NewMemoryStore()
			bucket := assets.NewMemoryBucket("")
			ts := testutil.NewTestStoreWith(t, store, records.NewLocalBackend(store), bucket)

			url, err := ts.Store.UploadImage(ctx, imageUpload("doc.pdf", ct, data))
			if !errors.Is(err, cms.ErrNotAnImage) {
				t.Errorf("UploadImage() error = %v, want ErrNotAnImage", err)
			}
			if url != "" {
				t.Errorf("UploadImage() = %q, want empty", url)
			}
			if bucket.Len() != 0 {
				t.Errorf("bucket holds %d objects, want 0", bucket.Len())
			}
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		store := kv.NewMemoryStore()
		ts := testutil.NewTestStoreWith(t, store, records.NewLocalBackend(store), testutil.FailingBucket{})

		url, err := ts.Store.UploadImage(ctx, imageUpload("a.png", "image/png", data))
		if !errors.Is(err, testutil.ErrUnavailable) {
			t.Errorf("UploadImage() error = %v, want ErrUnavailable", err)
		}
		if url != "" {
			t.Errorf("UploadImage() = %q, want empty", url)
		}
		if latest := ts.Store.GetLogs()[0]; latest.Level != cms.LevelError {
			t.Errorf("latest journal entry = %+v, want ERROR", latest)
		}
	})

	t.Run("no bucket configured", func(t *testing.T) {
		store := kv.NewMemoryStore()
		ts := testutil.NewTestStoreWith(t, store, records.NewLocalBackend(store), nil)

		if _, err := ts.Store.UploadImage(ctx, imageUpload("a.png", "image/png", data)); err == nil {
			t.Error("UploadImage() expected error without a bucket")
		}
	})
}
