// Package server assembles the HTTP server: routing, CORS, and the health
// endpoint over the wired domain services.
package server

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/images"
	"storefront/internal/orders"
	"storefront/internal/storage"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg *config.Config

	db      database.Service
	storage storage.Service

	auth    auth.Service
	catalog *catalog.Service
	orders  *orders.Service
	images  *images.Service
}

// Deps bundles the wired services the server routes to. Storage and Images
// may be nil when object storage is not configured.
type Deps struct {
	DB      database.Service
	Storage storage.Service
	Auth    auth.Service
	Catalog *catalog.Service
	Orders  *orders.Service
	Images  *images.Service
}

// New configures an HTTP server over the given dependencies.
func New(cfg *config.Config, deps Deps) *http.Server {
	s := &Server{
		cfg:     cfg,
		db:      deps.DB,
		storage: deps.Storage,
		auth:    deps.Auth,
		catalog: deps.Catalog,
		orders:  deps.Orders,
		images:  deps.Images,
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
