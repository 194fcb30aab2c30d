// Package app provides service initialization.
package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ovenline/bakeops/config"
	"github.com/ovenline/bakeops/internal/circuitbreaker"
	"github.com/ovenline/bakeops/internal/events"
	"github.com/ovenline/bakeops/internal/service"
)

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Costing   service.CostingService
	Pricer    *service.VolumePricer
	Quotes    service.QuoteService
	Tasks     service.TaskService
	Shopping  service.ShoppingService
	Inventory service.InventoryService
	Publisher events.Publisher
}

// InitializeServices wires the business services over the repository stack.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	publisher := initializePublisher(cfg.Messaging)

	distance := service.NewResilientProvider(
		initializeDistanceProvider(cfg.Distance),
		cfg.Distance.Timeout,
		cfg.Distance.AvgSpeedMPH,
	)

	costing := service.NewCostingEngine(db.Catalog, cfg.Pricing,
		service.WithOrderRepository(db.Orders),
		service.WithDistanceProvider(distance),
		service.WithPublisher(publisher),
		service.WithBakeryLocation(cfg.Distance.BakeryLat, cfg.Distance.BakeryLng),
	)

	return &ServiceComponents{
		Costing:   costing,
		Pricer:    service.NewVolumePricer(db.Catalog),
		Quotes:    service.NewQuoteReviser(db.Quotes),
		Tasks:     service.NewTaskScheduler(db.Tasks, db.Orders, service.WithTaskPublisher(publisher)),
		Shopping:  service.NewShoppingAggregator(db.Catalog, db.Orders),
		Inventory: service.NewInventoryChecker(db.Inventory),
		Publisher: publisher,
	}
}

// initializeDistanceProvider builds the routed provider behind a circuit
// breaker when one is configured. A nil return makes the resilient wrapper
// answer everything with the straight-line fallback.
func initializeDistanceProvider(cfg config.DistanceConfig) service.DistanceProvider {
	if cfg.ProviderURL == "" {
		return nil
	}
	routed := service.NewRoutedProvider(cfg.ProviderURL, nil)
	return service.NewBreakerProvider(routed, circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "distance-provider",
	})
}

// initializePublisher connects to RabbitMQ when messaging is enabled; a failed
// connection degrades to the noop publisher rather than blocking startup.
func initializePublisher(cfg config.MessagingConfig) events.Publisher {
	if !cfg.Enabled {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to RabbitMQ, events disabled")
		return events.NoopPublisher{}
	}
	log.Info().Str("exchange", cfg.Exchange).Msg("Connected to RabbitMQ")
	return publisher
}
