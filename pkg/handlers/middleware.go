package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/shift-roster-go/pkg/auth"
	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/arnavshah/shift-roster-go/pkg/demand"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestID = "requestID"
	ctxUsername  = "username"
	ctxAPIKey    = "apiKey"
	ctxUserID    = "userID"

	headerRequestID = "X-Request-ID"
)

func bearer(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

// requestLog is the handler logger tagged with the current request id
func (h *Handler) requestLog(c *gin.Context) *logger.Logger {
	return h.Log.WithField("request_id", c.GetString(ctxRequestID))
}

// RequestLogger stamps every request with an id and logs it once it completes
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)

		c.Next()

		entry := h.requestLog(c).WithFields(map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request completed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := h.Keys.VerifyToken(bearer(token))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key, enforces the key's daily
// rate limit and loads the key record used for usage tracking.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}
		key = bearer(key)

		userID, err := h.Keys.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		apiKey, err := database.FindOrCreateKey(h.DB, key, userID, auth.KeyPreview(key))
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}
		if apiKey.Revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key revoked"})
			c.Abort()
			return
		}

		now := time.Now()
		used, err := database.RequestsOn(h.DB, apiKey.ID, now.Format(demand.DateLayout))
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}
		if used >= apiKey.RateLimit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily rate limit exceeded"})
			c.Abort()
			return
		}

		if err := database.TouchKey(h.DB, apiKey.ID, now); err != nil {
			h.requestLog(c).WithError(err).Warn("could not update key last_used")
		}

		c.Set(ctxAPIKey, apiKey)
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func currentKey(c *gin.Context) (*database.APIKey, bool) {
	raw, exists := c.Get(ctxAPIKey)
	if !exists {
		return nil, false
	}
	apiKey, ok := raw.(*database.APIKey)
	return apiKey, ok
}
