package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for writing generated artifacts.
type ObjectStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	// URL returns the locator under which storageKey is reachable.
	URL(storageKey string) string
}
