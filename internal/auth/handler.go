package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fixed response messages; the wire contract exposes nothing beyond these.
const (
	msgLoginSuccess       = "Login successful"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid credentials"
	msgServerError        = "Server error"
)

// Handler handles authentication HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new authentication handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the auth endpoints on the given router group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/auth")
	{
		grp.POST("/login", h.Login)
		grp.POST("/register", h.Register)
		grp.GET("/me", Middleware(h.service), h.Me)
	}
}

// Login handles POST /auth/login
//
// Responses are fixed by contract: 200 with token and public user
// projection, 404 "User not found", 401 "Invalid credentials", and 500
// "Server error" for everything else including malformed input.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
		return
	}

	token, user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
		default:
			slog.Error("login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: msgLoginSuccess,
		Token:   token,
		User:    user.Public(),
	})
}

// Register handles POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and password are required"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "This email is already registered"})
			return
		}
		slog.Error("registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user.Public(),
	})
}

// Me handles GET /auth/me and returns the authenticated user's projection.
func (h *Handler) Me(c *gin.Context) {
	userID := MustUserID(c)

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
			return
		}
		slog.Error("failed to load current user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
