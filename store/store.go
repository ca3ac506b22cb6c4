// Package store keeps track of uploaded documents so that later operations can
// refer to them by id instead of uploading the file again.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/xid"
)

// ErrNotFound is returned when no live document has the requested id.
var ErrNotFound = errors.New("document not found")

// Document describes an uploaded PDF kept on local disk.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Pages      int       `json:"pages"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether d is past its expiry at now. A zero expiry never expires.
func (d *Document) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// Store is a registry of uploaded documents.
type Store interface {
	// Put saves doc, replacing any document with the same id.
	Put(ctx context.Context, doc *Document) error
	// Get returns the document with id or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)
	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// Expired removes and returns entries past their expiry so their files can be
	// cleaned up. Stores that expire entries on their own return nil.
	Expired(ctx context.Context, now time.Time) ([]*Document, error)
	Close() error
}

// NewID returns a new unique document id.
func NewID() string {
	return xid.New().String()
}
