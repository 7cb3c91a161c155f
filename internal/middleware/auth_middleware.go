package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/session"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SessionKey is the gin context key holding the *session.Session.
const SessionKey = "session"

type SessionLookup interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// JWTAuthMiddleware resolves the bearer token to a live session.
func JWTAuthMiddleware(issuer *auth.Issuer, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := issuer.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		s, err := sessions.Get(c.Request.Context(), token.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
				return
			}
			log.WithError(err).Error("❌ session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check session"})
			return
		}

		c.Set(SessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session set by JWTAuthMiddleware.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
