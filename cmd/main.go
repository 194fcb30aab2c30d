// Package main is the entry point for the bakeops service.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ovenline/bakeops/config"
	"github.com/ovenline/bakeops/internal/app"
)

func main() {
	cfg := config.Load()

	router, db, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Initialization failed")
	}
	defer func() {
		_ = db.DB.Close(context.Background())
	}()

	server := app.NewServer(router, cfg.Server)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
