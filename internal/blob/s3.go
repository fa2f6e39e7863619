package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3API is the subset of the S3 client used by the store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures an S3-backed store.
type S3Options struct {
	Bucket        string
	Region        string
	Prefix        string // key prefix within the bucket (e.g. "produtos/")
	PublicBaseURL string // optional CDN or website endpoint
}

// s3Store implements Store on AWS S3.
type s3Store struct {
	client s3API
	opts   S3Options
	logger zerolog.Logger
}

// NewS3Store creates a store that uploads into an S3 bucket.
func NewS3Store(ctx context.Context, opts S3Options, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-blob-store").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", opts.Bucket).
		Str("region", opts.Region).
		Str("prefix", opts.Prefix).
		Msg("S3 store initialised")

	return newS3Store(s3.NewFromConfig(cfg), opts, logger), nil
}

func newS3Store(client s3API, opts S3Options, logger zerolog.Logger) *s3Store {
	return &s3Store{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// Put uploads content as a new object and returns its public URL.
func (s *s3Store) Put(ctx context.Context, filename string, content io.Reader) (string, error) {
	key := s.opts.Prefix + NewKey(filename)

	body, err := buffer(content)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(body.Size()),
	}
	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.opts.Bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.opts.Bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.opts.Bucket).
		Str("key", key).
		Int64("bytes", body.Size()).
		Msg("upload stored in S3")

	return s.objectURL(key), nil
}

func (s *s3Store) objectURL(key string) string {
	if s.opts.PublicBaseURL != "" {
		return joinURL(s.opts.PublicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}
