package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"renonx-go/internal/cms"
	"renonx-go/internal/encryption"
)

// ErrPassphraseRequired is returned by Import when the snapshot is encrypted
// and no passphrase source was given.
var ErrPassphraseRequired = errors.New("snapshot is encrypted: passphrase required")

// Export writes a JSON snapshot of all content to w. A non-empty passphrase
// encrypts the snapshot.
func (a *App) Export(ctx context.Context, w io.Writer, passphrase string) error {
	snap, err := a.store.Export(ctx)
	if err != nil {
		a.op.Fail(err)
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	if passphrase == "" {
		_, err = w.Write(data)
		return err
	}
	return a.encryptor.Encrypt(bytes.NewReader(data), w, passphrase)
}

// Import reads a snapshot written by Export and merges it into the store.
// passphrase is only called when the snapshot is encrypted.
func (a *App) Import(ctx context.Context, r io.Reader, passphrase func() (string, error)) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading snapshot: %w", err)
	}

	if encryption.IsEncrypted(data) {
		if passphrase == nil {
			return 0, ErrPassphraseRequired
		}
		pass, err := passphrase()
		if err != nil {
			return 0, err
		}
		var plain bytes.Buffer
		if err := a.encryptor.Decrypt(bytes.NewReader(data), &plain, pass); err != nil {
			return 0, err
		}
		data = plain.Bytes()
	}

	var snap cms.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("decoding snapshot: %w", err)
	}

	n, err := a.store.Import(ctx, snap)
	a.op.Fail(err)
	return n, err
}

// UploadFile uploads the image at path and returns its public URL.
func (a *App) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	contentType, err := detectContentType(f, path)
	if err != nil {
		return "", err
	}

	url, err := a.store.UploadImage(ctx, cms.ImageUpload{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Body:        f,
	})
	a.op.Fail(err)
	return url, err
}

// detectContentType uses the file extension, falling back to sniffing the
// first bytes. f is rewound afterwards.
func detectContentType(f io.ReadSeeker, path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding %s: %w", path, err)
	}
	return http.DetectContentType(head[:n]), nil
}
