package cms

import (
	"encoding/json"
	"fmt"
)

// toDocument converts a typed record into its Document form via its JSON tags.
func toDocument(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return doc, nil
}

// fromDocument converts a Document back into a typed record. Unknown fields are ignored.
func fromDocument[T any](doc Document) (T, error) {
	var out T
	data, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("encoding document: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding document: %w", err)
	}
	return out, nil
}

// fromDocuments converts every document, failing on the first that does not decode.
func fromDocuments[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := fromDocument[T](doc)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", doc.ID(), err)
		}
		out = append(out, rec)
	}
	return out, nil
}
