// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ovenline/bakeops/config"
	"github.com/ovenline/bakeops/internal/http"
)

// mongoChecker adapts the MongoDB health check to the HealthChecker interface.
type mongoChecker struct {
	db *DatabaseComponents
}

func (c mongoChecker) Check() error {
	return c.db.DB.HealthCheck(context.Background())
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) (*gin.Engine, *DatabaseComponents, error) {
	InitializeLogger()

	dbComponents, err := InitializeDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	serviceComponents := InitializeServices(cfg, dbComponents)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	router := http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)
	return router, dbComponents, nil
}
