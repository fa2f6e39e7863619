package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
)

// Connects with the configured DB_* settings, reports the database name
// and product count, and bootstraps the schema when asked to.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	if cfg.Database.BootstrapSchema {
		if err := database.EnsureSchema(ctx, pool, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Schema bootstrap failed: %v\n", err)
			os.Exit(1)
		}
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		fmt.Fprintf(os.Stderr, "products table not available: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("products table has %d rows\n", count)
}
