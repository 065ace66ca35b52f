package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles catalog HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/products")
	{
		grp.GET("", h.List)
		grp.GET("/:id", h.Get)
	}
}

// List handles GET /products with an optional ?search= filter.
func (h *Handler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		slog.Error("failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Products: products, Count: len(products)})
}

// Get handles GET /products/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		slog.Error("failed to get product", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, product)
}
