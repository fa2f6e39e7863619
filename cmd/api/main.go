package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-catalog/internal/blob"
	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/handler"
	"product-catalog/internal/imagesource"
	"product-catalog/internal/repository"
	"product-catalog/internal/router"
	"product-catalog/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("storage_driver", cfg.Storage.Driver).
		Str("image_mode", cfg.Image.Mode).
		Msg("starting product catalog API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize persistence
	var pool *pgxpool.Pool
	if cfg.Storage.Driver == repository.DriverPostgres {
		pool, err = database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if cfg.Database.BootstrapSchema {
			if err := database.EnsureSchema(ctx, pool, logger); err != nil {
				return err
			}
		}
	}

	productRepo, err := repository.New(cfg.Storage.Driver, pool, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}

	// Initialize image source
	var store blob.Store
	if cfg.Image.Mode == imagesource.ModeUpload {
		store, err = newBlobStore(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize blob store: %w", err)
		}
	}

	images, err := imagesource.New(cfg.Image.Mode, store, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize image source: %w", err)
	}

	// Initialize services and handlers
	productService := service.NewProductService(productRepo, images, logger)
	productHandler := handler.NewProductHandler(productService, cfg.Image.MaxUploadBytes, logger)

	// Initialize router
	routerOpts := router.Options{}
	if cfg.Image.Mode == imagesource.ModeUpload {
		routerOpts.UploadDir = cfg.Blob.UploadDir
		routerOpts.UploadURLPrefix = cfg.Blob.UploadURLPrefix
	}
	mux := router.New(productHandler, routerOpts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newBlobStore builds the disk store and, for the s3 backend, puts S3 in
// front of it. If the S3 client cannot be created, disk is used alone.
func newBlobStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (blob.Store, error) {
	diskStore, err := blob.NewDiskStore(cfg.Blob.UploadDir, cfg.Blob.UploadURLPrefix, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Blob.Backend != blob.BackendS3 {
		logger.Info().Msg("using local file system for image uploads (S3 disabled)")
		return diskStore, nil
	}

	s3Store, err := blob.NewS3Store(ctx, blob.S3Options{
		Bucket:        cfg.S3.Bucket,
		Region:        cfg.S3.Region,
		Prefix:        cfg.S3.Prefix,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	}, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return diskStore, nil
	}

	return blob.NewFallbackStore(s3Store, diskStore, logger), nil
}
