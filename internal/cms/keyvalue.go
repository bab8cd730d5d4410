package cms

import "context"

// Fixed key-value slots. The local backend keeps one JSON value per collection;
// the session and journal always live here, whichever backend holds the records.
const (
	KeySettings = "renonx_settings"
	KeySkills   = "renonx_skills"
	KeyProjects = "renonx_projects"
	KeyBlogs    = "renonx_blogs"
	KeyLogs     = "renonx_logs"
	KeyUser     = "renonx_user"
	KeySeeded   = "renonx_seeded"
)

// KeyValue is a small persisted string-keyed map.
type KeyValue interface {
	// Get returns the value stored under key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the store's resources.
	Close() error
}
