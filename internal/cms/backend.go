package cms

import "context"

// Collection names one of the record sets held by a Backend.
type Collection string

const (
	CollectionSettings Collection = "settings"
	CollectionSkills   Collection = "skills"
	CollectionProjects Collection = "projects"
	CollectionBlogs    Collection = "blogs"
)

// Collections lists every record collection.
var Collections = []Collection{CollectionSettings, CollectionSkills, CollectionProjects, CollectionBlogs}

// SettingsID is the fixed id of the settings singleton.
const SettingsID = "global"

// Document is one record in its internal field layout (camelCase names, "id" key).
// Backends that store records under other field names translate at their boundary.
type Document map[string]any

// ID returns the document's "id" field, or "" if it is missing or not a string.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Backend is the record persistence capability the ContentStore depends on.
// Implementations: records.LocalBackend (key-value map) and records.MongoBackend (hosted).
type Backend interface {
	// List returns every document in the collection. Order is backend-defined;
	// the store applies its own ordering where the collection needs one.
	List(ctx context.Context, c Collection) ([]Document, error)

	// Insert adds one document. Ids are assigned by the caller.
	Insert(ctx context.Context, c Collection, doc Document) error

	// Replace overwrites the document with the given id, creating it if absent.
	Replace(ctx context.Context, c Collection, id string, doc Document) error

	// DeleteByID removes the document with the given id. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, c Collection, id string) error

	// UpdatePartial sets the given fields on the document with the given id.
	// Returns ErrNotFound if no such document exists.
	UpdatePartial(ctx context.Context, c Collection, id string, fields Document) error

	// Close releases the backend's resources.
	Close() error
}
