// Package app provides router configuration.
package app

import (
	"github.com/ovenline/bakeops/config"
	"github.com/ovenline/bakeops/internal/http"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(
		services.Costing,
		services.Pricer,
		services.Quotes,
		services.Tasks,
		services.Shopping,
		services.Inventory,
	)

	healthHandler := http.NewHealthHandler()
	if db != nil {
		healthHandler.RegisterChecker("mongodb", mongoChecker{db: db})
		if db.CatalogCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_catalog", db.CatalogCircuitBreaker)
		}
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
