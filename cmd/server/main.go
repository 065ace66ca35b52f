package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/images"
	"storefront/internal/logger"
	"storefront/internal/orders"
	"storefront/internal/server"
	"storefront/internal/storage"
)

func main() {
	logger.SetDefault(logger.New())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("starting storefront", "port", cfg.Port, "shop", cfg.ShopName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	cache := catalog.NewCacheClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if cache != nil {
		defer cache.Close()
		slog.Info("connected to redis", "addr", cfg.RedisAddr)
	} else {
		slog.Warn("redis unavailable, catalog cache disabled", "addr", cfg.RedisAddr)
	}

	var storageSvc storage.Service
	var imagesSvc *images.Service
	if storage.Configured() {
		storageSvc, err = storage.New(ctx)
		if err != nil {
			slog.Warn("failed to initialize object storage, image endpoints disabled", "error", err)
		} else {
			imagesSvc = images.NewService(storageSvc)
			slog.Info("object storage initialized")
		}
	} else {
		slog.Info("object storage not configured, image endpoints disabled")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(auth.NewRepository(db), issuer, cfg.BcryptCost)

	catalogSvc := catalog.NewService(catalog.NewRepository(db), cache)
	if err := catalogSvc.Seed(ctx); err != nil {
		slog.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	ordersSvc := orders.NewService(orders.NewRepository(db), cfg.ShopPhone, cfg.ShopName)

	srv := server.New(cfg, server.Deps{
		DB:      db,
		Storage: storageSvc,
		Auth:    authSvc,
		Catalog: catalogSvc,
		Orders:  ordersSvc,
		Images:  imagesSvc,
	})

	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("stopped")
}
