package images

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler handles product image HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new images handler. service may be nil when object
// storage is not configured; endpoints then respond 503.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the image endpoints behind the auth middleware.
func (h *Handler) RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc) {
	grp := r.Group("/images", authMW)
	{
		grp.POST("/upload-url", h.UploadURL)
		grp.POST("/download-url", h.DownloadURL)
		grp.DELETE("/*key", h.Delete)
	}
}

func (h *Handler) unavailable(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "image storage is not available"})
		return true
	}
	return false
}

// UploadURL handles POST /images/upload-url.
func (h *Handler) UploadURL(c *gin.Context) {
	if h.unavailable(c) {
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "filename and content_type are required"})
		return
	}

	resp, err := h.service.CreateUploadURL(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		slog.Error("failed to create upload URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadURL handles POST /images/download-url.
func (h *Handler) DownloadURL(c *gin.Context) {
	if h.unavailable(c) {
		return
	}

	var req DownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image_key is required"})
		return
	}

	resp, err := h.service.CreateDownloadURL(c.Request.Context(), req.ImageKey)
	if err != nil {
		slog.Error("failed to create download URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /images/:key.
func (h *Handler) Delete(c *gin.Context) {
	if h.unavailable(c) {
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image key is required"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), key); err != nil {
		slog.Error("failed to delete image", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted", "image_key": key})
}
