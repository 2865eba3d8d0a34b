package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"conformo/internal/config"
	"conformo/internal/database"
	"conformo/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	r := server.NewRouter(cfg, logger.Sugar())

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
