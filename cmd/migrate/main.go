package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Apurer/order-management-api/internal/app/api"
	"github.com/Apurer/order-management-api/internal/platform/database"
	"github.com/Apurer/order-management-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/order-management-api/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger(os.Stdout, os.Getenv("LOG_LEVEL"))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN not set; nothing to migrate")
	}
	db, err := database.Connect(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", cfg.Database.Driver, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate order schema: %v", err)
	}
	logger.Info("order schema migrated", "driver", cfg.Database.Driver)
}
