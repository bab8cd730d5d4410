package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"renonx-go/internal/cms"
)

// FileSystemBucket stores assets as files in a directory:
//
//	<root>/
//	  portfolio-assets/
//	    <name>
//
// The content type is recovered from the name's extension.
type FileSystemBucket struct {
	root    string
	dir     string
	baseURL string
}

// NewFileSystemBucket creates the bucket directory under root if needed.
func NewFileSystemBucket(root, baseURL string) (*FileSystemBucket, error) {
	dir := filepath.Join(root, cms.AssetBucketName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}
	return &FileSystemBucket{root: root, dir: dir, baseURL: baseURL}, nil
}

// Put writes the asset atomically (temp file + rename).
func (b *FileSystemBucket) Put(_ context.Context, name string, _ string, r io.Reader, size int64) error {
	if err := validName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set asset permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(b.dir, name)); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

func (b *FileSystemBucket) Get(_ context.Context, name string, w io.Writer) (string, error) {
	if err := validName(name); err != nil {
		return "", fmt.Errorf("asset %s: %w", name, cms.ErrNotFound)
	}
	f, err := os.Open(filepath.Join(b.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("asset %s: %w", name, cms.ErrNotFound)
		}
		return "", fmt.Errorf("failed to open asset: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return "", fmt.Errorf("failed to read asset: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType, nil
}

func (b *FileSystemBucket) URL(name string) string {
	return servedURL(b.baseURL, name)
}

// ValidateSetup verifies that the bucket directory exists and is writable.
func (b *FileSystemBucket) ValidateSetup(context.Context) error {
	info, err := os.Stat(b.dir)
	if err != nil {
		return fmt.Errorf("bucket directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("bucket path is not a directory: %s", b.dir)
	}

	probe, err := os.CreateTemp(b.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("bucket directory not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

var _ cms.AssetBucket = (*FileSystemBucket)(nil)
