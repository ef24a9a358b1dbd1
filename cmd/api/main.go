package main

import (
	"context"
	"log"

	"riskbook/internal"
	"riskbook/internal/api"
	"riskbook/internal/config"

	"github.com/joho/godotenv"
)

func main() {
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

	server := api.NewServer(state, logger)
	if err := server.ListenAndServe(":" + cfg.Server.Port); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
