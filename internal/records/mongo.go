package records

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"renonx-go/internal/cms"
)

const connectTimeout = 10 * time.Second

// storedFieldNames lists the fields the hosted service stores under a different
// name than the internal record layout, per collection.
var storedFieldNames = map[cms.Collection]map[string]string{
	cms.CollectionProjects: {"imageUrl": "image_url"},
	cms.CollectionBlogs:    {"imageUrl": "image_url"},
}

// sortedCollections are listed newest date first.
var sortedCollections = map[cms.Collection]bool{
	cms.CollectionProjects: true,
	cms.CollectionBlogs:    true,
}

// MongoBackend stores records in a MongoDB database, one collection per
// cms.Collection. Documents are addressed by their writer-assigned "id" field;
// the server's _id is never returned.
type MongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ cms.Backend = (*MongoBackend)(nil)

// NewMongoBackend connects to uri, verifies the connection and ensures the
// unique id index on every collection.
func NewMongoBackend(ctx context.Context, uri, dbName string) (*MongoBackend, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	b := &MongoBackend{client: client, db: client.Database(dbName)}
	if err := b.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return b, nil
}

func (b *MongoBackend) ensureIndexes(ctx context.Context) error {
	for _, c := range cms.Collections {
		_, err := b.db.Collection(string(c)).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("ensuring index on %s: %w", c, err)
		}
	}
	return nil
}

func (b *MongoBackend) List(ctx context.Context, c cms.Collection) ([]cms.Document, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	if sortedCollections[c] {
		opts.SetSort(bson.D{{Key: "date", Value: -1}})
	}

	cur, err := b.db.Collection(string(c)).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", c, err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("reading %s: %w", c, err)
	}

	docs := make([]cms.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromStored(c, normalizeMap(m)))
	}
	return docs, nil
}

func (b *MongoBackend) Insert(ctx context.Context, c cms.Collection, doc cms.Document) error {
	_, err := b.db.Collection(string(c)).InsertOne(ctx, bson.M(toStored(c, doc)))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s %s: %w", c, doc.ID(), cms.ErrDuplicateID)
		}
		return fmt.Errorf("inserting into %s: %w", c, err)
	}
	return nil
}

func (b *MongoBackend) Replace(ctx context.Context, c cms.Collection, id string, doc cms.Document) error {
	stored := toStored(c, doc)
	stored["id"] = id
	_, err := b.db.Collection(string(c)).ReplaceOne(ctx, bson.M{"id": id}, bson.M(stored),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replacing %s %s: %w", c, id, err)
	}
	return nil
}

func (b *MongoBackend) DeleteByID(ctx context.Context, c cms.Collection, id string) error {
	if _, err := b.db.Collection(string(c)).DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("deleting %s %s: %w", c, id, err)
	}
	return nil
}

func (b *MongoBackend) UpdatePartial(ctx context.Context, c cms.Collection, id string, fields cms.Document) error {
	res, err := b.db.Collection(string(c)).UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M(toStored(c, fields))})
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", c, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", c, id, cms.ErrNotFound)
	}
	return nil
}

func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return b.client.Disconnect(ctx)
}

// toStored renames internal field names to the names stored in collection c.
func toStored(c cms.Collection, doc cms.Document) cms.Document {
	return renameFields(doc, storedFieldNames[c])
}

// fromStored renames stored field names back to the internal layout.
func fromStored(c cms.Collection, doc cms.Document) cms.Document {
	reverse := make(map[string]string, len(storedFieldNames[c]))
	for internal, stored := range storedFieldNames[c] {
		reverse[stored] = internal
	}
	return renameFields(doc, reverse)
}

func renameFields(doc cms.Document, names map[string]string) cms.Document {
	out := make(cms.Document, len(doc))
	for k, v := range doc {
		if renamed, ok := names[k]; ok {
			k = renamed
		}
		out[k] = v
	}
	return out
}

// normalizeMap converts a decoded BSON document into plain Go maps and slices
// so it encodes to the same JSON as a locally stored record.
func normalizeMap(m map[string]any) cms.Document {
	out := make(cms.Document, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.M:
		return map[string]any(normalizeMap(t))
	case map[string]any:
		return map[string]any(normalizeMap(t))
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return map[string]any(normalizeMap(m))
	case primitive.A:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case primitive.ObjectID:
		return t.Hex()
	default:
		return v
	}
}

func normalizeSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = normalizeValue(v)
	}
	return out
}
