package testutil

import (
	"context"
	"errors"
	"io"

	"renonx-go/internal/cms"
)

// ErrUnavailable is returned by every failing fake.
var ErrUnavailable = errors.New("service unavailable")

// FailingBackend is a cms.Backend whose every call fails with ErrUnavailable.
type FailingBackend struct{}

var _ cms.Backend = FailingBackend{}

func (FailingBackend) List(context.Context, cms.Collection) ([]cms.Document, error) {
	return nil, ErrUnavailable
}

func (FailingBackend) Insert(context.Context, cms.Collection, cms.Document) error {
	return ErrUnavailable
}

func (FailingBackend) Replace(context.Context, cms.Collection, string, cms.Document) error {
	return ErrUnavailable
}

func (FailingBackend) DeleteByID(context.Context, cms.Collection, string) error {
	return ErrUnavailable
}

func (FailingBackend) UpdatePartial(context.Context, cms.Collection, string, cms.Document) error {
	return ErrUnavailable
}

func (FailingBackend) Close() error { return nil }

// FailingBucket is a cms.AssetBucket whose storage calls fail with ErrUnavailable.
type FailingBucket struct{}

var _ cms.AssetBucket = FailingBucket{}

func (FailingBucket) Put(context.Context, string, string, io.Reader, int64) error {
	return ErrUnavailable
}

func (FailingBucket) Get(context.Context, string, io.Writer) (string, error) {
	return "", ErrUnavailable
}

func (FailingBucket) URL(name string) string { return "/assets/" + name }

func (FailingBucket) ValidateSetup(context.Context) error { return ErrUnavailable }

// FailingKeyValue is a cms.KeyValue that reads as empty and fails every write.
type FailingKeyValue struct{}

var _ cms.KeyValue = FailingKeyValue{}

func (FailingKeyValue) Get(context.Context, string) ([]byte, error) { return nil, nil }
func (FailingKeyValue) Set(context.Context, string, []byte) error   { return ErrUnavailable }
func (FailingKeyValue) Delete(context.Context, string) error        { return ErrUnavailable }
func (FailingKeyValue) Close() error                                { return nil }
