// Package blobstore stores file contents under opaque string keys.
//
// Implementations return the provider error unchanged; callers decide how
// to classify it.
package blobstore

import (
	"context"
	"io"
	"time"
)

// Store is object storage keyed by string keys.
type Store interface {
	// Put writes r under key, replacing any existing object. size may be -1
	// when unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the object at key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet issues a read URL for key that is valid for ttl.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// PublicURL returns the stable, non-expiring locator for key.
	PublicURL(key string) string
}
