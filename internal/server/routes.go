package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/images"
	"storefront/internal/orders"
)

// RegisterRoutes builds the gin engine and mounts all domain handlers.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)

	authMW := auth.Middleware(s.auth)

	auth.NewHandler(s.auth).RegisterRoutes(r)
	catalog.NewHandler(s.catalog).RegisterRoutes(r)
	orders.NewHandler(s.orders).RegisterRoutes(r, authMW)
	images.NewHandler(s.images).RegisterRoutes(r, authMW)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx := c.Request.Context()
	response := make(map[string]interface{})

	response["database"] = s.db.Health(ctx)
	response["catalog"] = s.catalog.Health(ctx)

	if s.storage != nil {
		storageHealth := make(map[string]string)
		if err := s.storage.Health(ctx); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		} else {
			storageHealth["status"] = "up"
		}
		response["storage"] = storageHealth
	}

	c.JSON(http.StatusOK, response)
}
