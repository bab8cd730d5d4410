package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
)

// ImageUpload is a binary file submitted from the admin panel.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadImage stores an image in the asset bucket under a time-plus-random name
// and returns its public URL. On any failure it returns "" and an error; callers
// keep the image reference they had before.
func (s *ContentStore) UploadImage(ctx context.Context, up ImageUpload) (string, error) {
	mediaType, _, err := mime.ParseMediaType(up.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		s.state.AppendLog(ctx, "Upload rejected: "+up.Filename+" is not an image", LevelError)
		return "", fmt.Errorf("%w: %q", ErrNotAnImage, up.ContentType)
	}
	if s.bucket == nil {
		return "", s.fail(ctx, "uploading "+up.Filename, errors.New("no asset bucket configured"))
	}

	name := s.assetName(up.Filename, mediaType)
	if err := s.bucket.Put(ctx, name, mediaType, up.Body, up.Size); err != nil {
		return "", s.fail(ctx, "uploading "+up.Filename, err)
	}

	url := s.bucket.URL(name)
	s.logger.Info("image uploaded", "name", name, "size", up.Size)
	s.state.AppendLog(ctx, "Image uploaded: "+name, LevelSuccess)
	return url, nil
}

// assetName derives a collision-resistant object name: <unix-millis>-<random>.<ext>.
func (s *ContentStore) assetName(filename, mediaType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	suffix := strings.ReplaceAll(s.idgen.New(), "-", "")
	if len(suffix) > 12 {
		suffix = suffix[:12]
	}
	return fmt.Sprintf("%d-%s%s", s.clock.Now().UnixMilli(), suffix, ext)
}
