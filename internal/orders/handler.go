package orders

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/auth"
)

// Handler handles order HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new orders handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the order endpoints behind the auth middleware.
func (h *Handler) RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc) {
	grp := r.Group("/orders", authMW)
	{
		grp.POST("", h.Place)
		grp.GET("", h.History)
		grp.GET("/:id", h.Get)
		grp.GET("/:id/invoice", h.Invoice)
	}
}

// Place handles POST /orders.
func (h *Handler) Place(c *gin.Context) {
	userID := auth.MustUserID(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "items are required"})
		return
	}

	resp, err := h.service.Place(c.Request.Context(), userID, req.Items)
	if err != nil {
		if errors.Is(err, ErrEmptyOrder) || errors.Is(err, ErrInvalidItem) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		slog.Error("failed to place order", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// History handles GET /orders.
func (h *Handler) History(c *gin.Context) {
	userID := auth.MustUserID(c)

	orders, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list orders", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// Get handles GET /orders/:id.
func (h *Handler) Get(c *gin.Context) {
	userID := auth.MustUserID(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	order, err := h.service.Get(c.Request.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		slog.Error("failed to get order", "order_id", orderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// Invoice handles GET /orders/:id/invoice and returns a printable
// plain-text invoice.
func (h *Handler) Invoice(c *gin.Context) {
	userID := auth.MustUserID(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	invoice, err := h.service.Invoice(c.Request.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		slog.Error("failed to render invoice", "order_id", orderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.String(http.StatusOK, invoice)
}
