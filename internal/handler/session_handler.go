package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/session"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (auth.Token, error)
}

type SessionStore interface {
	Open(ctx context.Context, token auth.Token) (*session.Session, error)
	Close(ctx context.Context, id string) error
}

type SessionHandler struct {
	auth     Authenticator
	sessions SessionStore
}

func NewSessionHandler(authenticator Authenticator, sessions SessionStore) *SessionHandler {
	return &SessionHandler{auth: authenticator, sessions: sessions}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.WithError(err).WithField("username", req.Username).Error("❌ login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	if _, err := h.sessions.Open(c.Request.Context(), token); err != nil {
		log.WithError(err).WithField("username", req.Username).Error("❌ failed to open session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	log.WithField("username", token.Username).Info("🔑 session opened")
	c.JSON(http.StatusOK, AuthResponse{
		Token:     token.Value,
		Username:  token.Username,
		ExpiresAt: token.ExpiresAt,
	})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.sessions.Close(c.Request.Context(), s.ID); err != nil {
		log.WithError(err).WithField("username", s.Username).Error("❌ failed to close session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	log.WithField("username", s.Username).Info("👋 session closed")
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) Current(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Username: s.Username, ExpiresAt: s.ExpiresAt})
}
