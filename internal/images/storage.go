// Package images handles upload, optimization and storage of image assets.
// Binary content lives out-of-band in a pluggable Storage backend; only the
// sanitized filename identifies an asset.
package images

import (
	"context"
	"errors"
)

// ErrNoFile marks a lookup of an asset name that is not in storage.
var ErrNoFile = errors.New("file not found")

// URLPrefix is where the HTTP layer serves stored images from.
const URLPrefix = "/images/"

// Asset is the derived metadata for one stored image.
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Storage persists image bytes under sanitized names.
type Storage interface {
	List(ctx context.Context) ([]Asset, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}
