package main

import (
	"context"
	"log"

	"riskbook/internal"
	"riskbook/internal/api"
	"riskbook/internal/config"
	"riskbook/ui"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	logger := internal.NewDefaultLogger()

	state, err := api.BuildState(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	server := ui.NewServer(state, cfg.Server.GinMode, logger)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("dashboard failed: %v", err)
	}
}
