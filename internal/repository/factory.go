package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Storage drivers accepted by New.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// New returns the product repository for the named driver.
// pool is only used by the postgres driver.
func New(driver string, pool *pgxpool.Pool, logger zerolog.Logger) (ProductRepository, error) {
	switch driver {
	case DriverPostgres:
		if pool == nil {
			return nil, fmt.Errorf("postgres driver requires a connection pool")
		}
		return NewProductRepository(pool, logger), nil
	case DriverMemory:
		return NewMemoryProductRepository(logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}
