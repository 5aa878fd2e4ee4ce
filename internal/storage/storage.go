// Package storage contains upload storage abstractions with a local-directory
// backend and an S3-compatible (MinIO) backend.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

var (
	// ErrNotExist is returned by Get when no object is stored under the key.
	ErrNotExist = errors.New("object does not exist")
	// ErrInvalidKey is returned for keys that are empty or contain path elements.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
// Path is the backend-specific location reported to API callers.
type ObjectInfo struct {
	Key          string
	Path         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is a reusable upload storage client interface.
// Put overwrites any object already stored under the same key.
type Storage interface {
	// Put stores the full content of r under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}

// ValidateKey accepts flat object names only.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
