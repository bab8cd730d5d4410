package assets

import (
	"context"
	"fmt"
	"os"

	"renonx-go/internal/cms"
	"renonx-go/internal/config"
)

// NewFromConfig creates a cms.AssetBucket implementation based on the assets config type.
// S3 credentials come from RENONX_S3_ACCESS_KEY/RENONX_S3_SECRET_KEY when set,
// otherwise from the AWS default chain.
func NewFromConfig(ctx context.Context, cfg config.AssetsConfig) (cms.AssetBucket, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryBucket(cfg.PublicBaseURL), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem assets require fs_root to be set")
		}
		b, err := NewFileSystemBucket(cfg.FSRoot, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "s3":
		b, err := NewS3Bucket(ctx, S3Options{
			Bucket:        cms.AssetBucketName,
			Prefix:        cfg.S3Prefix,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.PublicBaseURL,
			AccessKey:     os.Getenv("RENONX_S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("RENONX_S3_SECRET_KEY"),
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown assets type: %s", cfg.Type)
	}
}
