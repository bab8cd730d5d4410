package records

import (
	"context"
	"fmt"
	"os"

	"renonx-go/internal/cms"
	"renonx-go/internal/config"
)

const defaultMongoDatabase = "renonx"

// NewFromConfig creates a cms.Backend implementation based on the backend config type.
// kv backs the local backend and is not closed by it.
func NewFromConfig(ctx context.Context, cfg config.BackendConfig, kv cms.KeyValue) (cms.Backend, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalBackend(kv), nil
	case "mongo":
		uri := cfg.MongoURI
		if uri == "" {
			uri = os.Getenv("MONGO_URI")
		}
		if uri == "" {
			return nil, fmt.Errorf("mongo backend requires mongo_uri or MONGO_URI")
		}
		dbName := cfg.MongoDatabase
		if dbName == "" {
			dbName = defaultMongoDatabase
		}
		b, err := NewMongoBackend(ctx, uri, dbName)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown backend type: %s", cfg.Type)
	}
}
