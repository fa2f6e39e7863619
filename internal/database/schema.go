package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the products table when it is missing.
// seq records insertion order for listing and category ordering.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		seq BIGINT GENERATED ALWAYS AS IDENTITY,
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		category TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		description TEXT,
		value DOUBLE PRECISION NOT NULL,
		image TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_products_seq ON products(seq);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`

// EnsureSchema bootstraps the products table. It is safe to call repeatedly.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")

	return nil
}
