package kv

import (
	"fmt"
	"os"
	"path/filepath"

	"renonx-go/internal/cms"
	"renonx-go/internal/config"
)

// dbFileName is the SQLite file created inside the configured data_dir.
const dbFileName = "renonx.db"

// NewFromConfig creates a cms.KeyValue implementation based on the storage config type.
func NewFromConfig(cfg config.StorageConfig, clock cms.Clock) (cms.KeyValue, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite storage")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		s, err := NewSQLiteStore(filepath.Join(cfg.DataDir, dbFileName), clock)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
