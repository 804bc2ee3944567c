package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist indicates no object is stored under the given name.
var ErrNotExist = errors.New("object does not exist")

// Store defines the contract for saving and retrieving binary objects.
// Names are opaque tokens assigned at save time; implementations join them
// onto a fixed base location and never interpret caller-supplied paths.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Stat(ctx context.Context, name string) (sizeBytes int64, err error)
	Delete(ctx context.Context, name string) error
}
