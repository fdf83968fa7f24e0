package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"comanda/internal/config"
	"comanda/internal/infrastructure/logger"
	"comanda/internal/infrastructure/mysql"
	"comanda/internal/order"
	"comanda/internal/product"
	"comanda/internal/server"
	"comanda/internal/session"
	"comanda/internal/table"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Money fields serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if err := mysql.Bootstrap(context.Background(), db); err != nil {
		zapLogger.Fatal("bootstrapping schema", zap.Error(err))
	}

	sessionCtrl := session.NewModule(db, cfg, zapLogger)
	orderCtrl := order.NewModule(db, cfg, zapLogger)
	productCtrl := product.NewModule(db, zapLogger)
	tableCtrl := table.NewModule(db, zapLogger)

	router := server.NewRouter(sessionCtrl, orderCtrl, productCtrl, tableCtrl, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
