package middleware

import (
	"cosmic_quiz_backend/internal/config"
	"cosmic_quiz_backend/internal/util"
	"crypto/subtle"

	"github.com/gin-gonic/gin"
)

// ModeratorGuard protects moderation and admin routes with the shared key
// from config, sent as X-Moderator-Key (or ?moderatorKey for panel links).
// This is an access gate, not user authentication; players have no accounts.
func ModeratorGuard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Moderation.Key == "" {
			util.Forbidden(c)
			c.Abort()
			return
		}

		key := c.GetHeader("X-Moderator-Key")
		if key == "" {
			key = c.Query("moderatorKey")
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Moderation.Key)) != 1 {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
