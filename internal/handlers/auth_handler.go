package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incogni100x/jltstones/internal/models"
	"github.com/incogni100x/jltstones/internal/redis"
	"github.com/incogni100x/jltstones/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	token, session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("Login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    session,
	})
}

// Session handles GET /api/auth/session. It sits behind RequireAuth, so a
// request reaching here always carries a live session.
func (h *AuthHandler) Session(c *gin.Context) {
	session := c.MustGet(sessionKey).(*redis.SessionData)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    session,
	})
}

// Logout handles POST /api/auth/logout. Logging out an already-dead session
// still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		log.Printf("Logout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
