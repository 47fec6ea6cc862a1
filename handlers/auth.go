package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accountd/accountd/internal/tokens"
	"github.com/accountd/accountd/internal/users"
	"github.com/accountd/accountd/pkg/logger"
	"github.com/accountd/accountd/pkg/metrics"
)

// RegisterRequest carries the legacy registration body. Field names (`pass`,
// `email`) are part of the wire contract and must not change.
type RegisterRequest struct {
	Pass  string `json:"pass"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

type ChangeRequest struct {
	Token   string `json:"token"`
	NewPass string `json:"newpass"`
}

// AuthHandler serves the public credential endpoints
type AuthHandler struct {
	svc *users.Service
}

func NewAuthHandler(svc *users.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register wires the public routes onto the given group
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/register", h.RegisterUser)
	rg.POST("/login", h.Login)
	rg.POST("/change", h.ChangePassword)
}

// RegisterUser handles POST /register.
// Business failures answer 200 with status:"error" (legacy contract); only a
// storage failure becomes a 5xx.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Invalid Password"})
		return
	}
	if req.Pass == "" {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Invalid Password"})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Invalid email"})
		return
	}

	err := h.svc.Register(c.Request.Context(), req.Email, req.Pass)
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("register", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case errors.Is(err, users.ErrEmailInUse):
		metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Username in use"})
	default:
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		logger.Errorf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "internal error"})
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Invalid username/password"})
		return
	}

	tok, err := h.svc.Login(c.Request.Context(), req.Email, req.Pass)
	switch {
	case err == nil:
		metrics.AuthAttempts.WithLabelValues("login", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "data": tok})
	case errors.Is(err, users.ErrInvalidCredentials):
		metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Invalid username/password"})
	default:
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		logger.Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "internal error"})
	}
}

// ChangePassword handles POST /change
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "password not valid"})
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), req.Token, req.NewPass)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case errors.Is(err, users.ErrInvalidInput):
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "password not valid"})
	case errors.Is(err, tokens.ErrInvalidToken):
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Signature error"})
	case errors.Is(err, users.ErrNotFound):
		// token holder's record was deleted in the meantime
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "Signature error"})
	default:
		logger.Errorf("change password failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "internal error"})
	}
}

// Me handles GET /me. It expects the auth middleware to have stored verified
// claims on the context.
func (h *AuthHandler) Me(c *gin.Context) {
	raw, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "missing token"})
		return
	}
	u, err := h.svc.FromToken(c.Request.Context(), raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": u.ID, "email": u.Email, "createdAt": u.CreatedAt}})
}

// bearerToken pulls the raw bearer token stored by the auth middleware.
func bearerToken(c *gin.Context) (string, bool) {
	v, ok := c.Get("token")
	if !ok {
		return "", false
	}
	raw, ok := v.(string)
	return raw, ok
}
