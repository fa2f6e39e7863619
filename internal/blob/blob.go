package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded image bytes and returns a reference to them.
type Store interface {
	// Put writes content under a fresh key derived from filename and
	// returns the reference clients use to fetch it.
	Put(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Backends accepted by the configuration.
const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)

// NewKey returns a collision-free object name that keeps the original extension.
func NewKey(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

// joinURL appends key to prefix with exactly one slash between them.
func joinURL(prefix, key string) string {
	return strings.TrimRight(prefix, "/") + "/" + key
}

// buffer returns content as a seekable reader with a known size.
func buffer(content io.Reader) (*bytes.Reader, error) {
	if r, ok := content.(*bytes.Reader); ok {
		return r, nil
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return bytes.NewReader(data), nil
}
