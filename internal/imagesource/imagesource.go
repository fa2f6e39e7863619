package imagesource

import (
	"context"
	"fmt"
	"strings"

	"product-catalog/internal/blob"
	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// Modes accepted by New.
const (
	ModeReference = "reference"
	ModeUpload    = "upload"
)

// Source turns the image data of a request into a stored reference.
type Source interface {
	// Mode reports which acquisition strategy is active.
	Mode() string

	// Resolve returns the reference to store, or nil when the request
	// carried no image usable in this mode.
	Resolve(ctx context.Context, in model.ImageInput) (*string, error)
}

// New returns the Source for mode. store is required for ModeUpload.
func New(mode string, store blob.Store, logger zerolog.Logger) (Source, error) {
	switch mode {
	case ModeReference:
		return NewReferenceSource(logger), nil
	case ModeUpload:
		if store == nil {
			return nil, fmt.Errorf("upload image mode requires a blob store")
		}
		return NewUploadSource(store, logger), nil
	default:
		return nil, fmt.Errorf("unknown image mode: %s", mode)
	}
}

// referenceSource passes externally hosted image references through.
type referenceSource struct {
	logger zerolog.Logger
}

// NewReferenceSource creates a Source that stores client-supplied references as-is.
func NewReferenceSource(logger zerolog.Logger) Source {
	return &referenceSource{
		logger: logger.With().Str("component", "reference-image-source").Logger(),
	}
}

func (s *referenceSource) Mode() string {
	return ModeReference
}

func (s *referenceSource) Resolve(ctx context.Context, in model.ImageInput) (*string, error) {
	if in.Upload != nil {
		s.logger.Debug().Str("original_name", in.Upload.Filename).Msg("ignoring upload in reference mode")
	}

	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		return nil, nil
	}

	return &ref, nil
}

// uploadSource writes uploaded files to a blob store.
type uploadSource struct {
	store  blob.Store
	logger zerolog.Logger
}

// NewUploadSource creates a Source that persists uploads through store.
func NewUploadSource(store blob.Store, logger zerolog.Logger) Source {
	return &uploadSource{
		store:  store,
		logger: logger.With().Str("component", "upload-image-source").Logger(),
	}
}

func (s *uploadSource) Mode() string {
	return ModeUpload
}

func (s *uploadSource) Resolve(ctx context.Context, in model.ImageInput) (*string, error) {
	if in.Upload == nil {
		if strings.TrimSpace(in.Reference) != "" {
			s.logger.Debug().Msg("ignoring image reference in upload mode")
		}
		return nil, nil
	}

	ref, err := s.store.Put(ctx, in.Upload.Filename, in.Upload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w: %w", model.ErrStorageFailure, err)
	}

	return &ref, nil
}
