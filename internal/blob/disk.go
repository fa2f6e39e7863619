package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// diskStore implements Store on the local file system.
type diskStore struct {
	dir       string
	urlPrefix string
	logger    zerolog.Logger
}

// NewDiskStore creates a store writing into dir. References are urlPrefix/<key>,
// which the router serves as static files.
func NewDiskStore(dir, urlPrefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "disk-blob-store").Logger()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", dir).Msg("failed to create upload directory")
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	logger.Info().
		Str("dir", dir).
		Str("url_prefix", urlPrefix).
		Msg("disk store initialised")

	return &diskStore{
		dir:       dir,
		urlPrefix: urlPrefix,
		logger:    logger,
	}, nil
}

// Put copies content into a new file under the store directory.
func (s *diskStore) Put(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := NewKey(filename)
	path := filepath.Join(s.dir, key)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create upload file")
		return "", fmt.Errorf("failed to create upload file %s: %w", path, err)
	}

	written, err := io.Copy(file, content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write upload file")
		return "", fmt.Errorf("failed to write upload file %s: %w", path, err)
	}

	s.logger.Info().
		Str("file", path).
		Str("original_name", filename).
		Int64("bytes", written).
		Msg("upload stored on disk")

	return joinURL(s.urlPrefix, key), nil
}
