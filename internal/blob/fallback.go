package blob

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// fallbackStore tries the primary store first, then falls back to the secondary.
type fallbackStore struct {
	primary   Store
	secondary Store
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that writes to primary and, if that fails,
// to secondary. A nil primary means secondary is used directly.
func NewFallbackStore(primary, secondary Store, logger zerolog.Logger) Store {
	return &fallbackStore{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-blob-store").Logger(),
	}
}

// Put buffers content once so both stores can read it from the start.
func (s *fallbackStore) Put(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.primary == nil {
		s.logger.Debug().Msg("primary store not configured, using secondary")
		return s.secondary.Put(ctx, filename, content)
	}

	body, err := buffer(content)
	if err != nil {
		return "", err
	}

	ref, err := s.primary.Put(ctx, filename, body)
	if err == nil {
		return ref, nil
	}

	s.logger.Warn().
		Err(err).
		Str("original_name", filename).
		Msg("failed to store upload in primary store, falling back to secondary")

	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return s.secondary.Put(ctx, filename, body)
}
