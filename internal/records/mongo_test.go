package records

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"renonx-go/internal/cms"
)

func TestFieldMapping(t *testing.T) {
	tests := []struct {
		name       string
		collection cms.Collection
		storedKey  string
	}{
		{"projects rename imageUrl", cms.CollectionProjects, "image_url"},
		{"blogs rename imageUrl", cms.CollectionBlogs, "image_url"},
		{"skills untouched", cms.CollectionSkills, "imageUrl"},
		{"settings untouched", cms.CollectionSettings, "imageUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := cms.Document{"id": "x", "imageUrl": "https://img", "title": "T"}

			stored := toStored(tt.collection, doc)
			if stored[tt.storedKey] != "https://img" {
				t.Errorf("stored[%q] = %v, want https://img", tt.storedKey, stored[tt.storedKey])
			}
			if stored["title"] != "T" || stored["id"] != "x" {
				t.Errorf("other fields changed: %v", stored)
			}

			back := fromStored(tt.collection, stored)
			if back["imageUrl"] != "https://img" {
				t.Errorf("round trip imageUrl = %v", back["imageUrl"])
			}
			if _, ok := back["image_url"]; ok && tt.storedKey == "image_url" {
				t.Error("round trip kept image_url")
			}
			if _, ok := doc["image_url"]; ok {
				t.Error("toStored mutated its input")
			}
		})
	}
}

func TestNormalizeMap(t *testing.T) {
	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	in := bson.M{
		"id":    "b1",
		"level": int32(95),
		"score": 95.0,
		"tags":  primitive.A{"go", "mongo"},
		"socialLinks": primitive.D{
			{Key: "github", Value: "https://github.com"},
		},
		"nested": primitive.M{"inner": primitive.A{primitive.M{"k": "v"}}},
		"at":     primitive.NewDateTimeFromTime(when),
	}

	got := normalizeMap(in)

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var skill struct {
		Level int `json:"level"`
		Score int `json:"score"`
	}
	if err := json.Unmarshal(data, &skill); err != nil {
		t.Fatalf("decoding normalized document into ints: %v", err)
	}
	if skill.Level != 95 || skill.Score != 95 {
		t.Errorf("level, score = %d, %d; want 95, 95", skill.Level, skill.Score)
	}

	if _, ok := got["tags"].([]any); !ok {
		t.Errorf("tags = %T, want []any", got["tags"])
	}
	links, ok := got["socialLinks"].(map[string]any)
	if !ok {
		t.Fatalf("socialLinks = %T, want map[string]any", got["socialLinks"])
	}
	if links["github"] != "https://github.com" {
		t.Errorf("socialLinks.github = %v", links["github"])
	}
	nested := got["nested"].(map[string]any)["inner"].([]any)
	if _, ok := nested[0].(map[string]any); !ok {
		t.Errorf("nested element = %T, want map[string]any", nested[0])
	}
	if got["at"] != when.Format(time.RFC3339Nano) {
		t.Errorf("at = %v", got["at"])
	}
}
