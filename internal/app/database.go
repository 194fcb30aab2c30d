// Package app provides database initialization and setup.
package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ovenline/bakeops/config"
	"github.com/ovenline/bakeops/internal/circuitbreaker"
	"github.com/ovenline/bakeops/internal/repository"
)

const catalogBreakerTimeout = 30 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	Catalog               repository.CatalogRepositoryInterface
	CatalogCache          *repository.CachedCatalogRepository
	Orders                repository.OrderRepositoryInterface
	Quotes                repository.QuoteRepositoryInterface
	Tasks                 repository.TaskRepositoryInterface
	Inventory             repository.InventoryRepositoryInterface
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes the MongoDB connection and creates the
// repository stack: base repositories, a circuit breaker guard on the catalog,
// and a TTL cache on top of that.
func InitializeDatabase(cfg config.Config) (*DatabaseComponents, error) {
	db, err := repository.NewMongoDB(cfg.Database.URI, cfg.Database.DatabaseName)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to MongoDB")

	catalogCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          catalogBreakerTimeout,
		Name:             "mongodb-catalog",
	})

	catalog := repository.NewCatalogRepository(db)
	catalogWithCB := repository.NewCatalogRepositoryWithCircuitBreaker(catalog, catalogCB)
	catalogCached := repository.NewCachedCatalogRepository(catalogWithCB, cfg.Cache.TTL, cfg.Cache.Size)

	return &DatabaseComponents{
		DB:                    db,
		Catalog:               catalogCached,
		CatalogCache:          catalogCached,
		Orders:                repository.NewOrderRepository(db),
		Quotes:                repository.NewQuoteRepository(db),
		Tasks:                 repository.NewTaskRepository(db),
		Inventory:             repository.NewInventoryRepository(db),
		CatalogCircuitBreaker: catalogCB,
	}, nil
}
