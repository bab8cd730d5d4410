package cms

import "errors"

var (
	// ErrInvalidRecord is returned when a record fails validation before it reaches the backend.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrNotFound is returned when an operation targets an id that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when an insert reuses an id already present in the collection.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrNotAnImage is returned by UploadImage when the declared media type is not image/*.
	ErrNotAnImage = errors.New("file is not an image")

	// ErrInvalidLink is returned when a project link cannot be used to build a preview.
	ErrInvalidLink = errors.New("link must start with http")
)
