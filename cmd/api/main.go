package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hoangnd-dev/storefront/api/routes"
	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/internal/orders"
	"github.com/hoangnd-dev/storefront/internal/seed"
	"github.com/hoangnd-dev/storefront/pkg/config"
	"github.com/hoangnd-dev/storefront/pkg/db"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// The embedded sqlite file has no migration pipeline of its own.
	if cfg.DB.Driver == "sqlite" {
		if err := dbClient.DB().AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
			logg.Error(context.Background(), "failed to migrate sqlite schema", err)
			os.Exit(1)
		}
	}

	catalogStore, err := catalog.NewGormStore(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog store", err)
		os.Exit(1)
	}

	if cfg.DB.Seed {
		if err := seed.Products(context.Background(), catalogStore, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	ordersRepo, err := orders.NewRepository(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create orders repository", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(ordersRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, catalogStore, ordersService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
