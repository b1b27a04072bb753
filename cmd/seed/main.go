package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"salesdesk/internal/commons"
	"salesdesk/internal/customer"
	"salesdesk/internal/infrastructure/logger"
	"salesdesk/internal/infrastructure/mysql"
	"salesdesk/internal/order"
	"salesdesk/internal/product"
	"salesdesk/internal/seed"
)

func main() {
	cfg, err := commons.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	pipeline := seed.NewPipeline(
		customer.NewService(db),
		product.NewService(db),
		order.NewService(db, zapLogger),
		zapLogger,
	)

	if err := pipeline.Run(context.Background()); err != nil {
		zapLogger.Fatal("seed failed", zap.Error(err))
	}
}
