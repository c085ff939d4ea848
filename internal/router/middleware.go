package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/handlers"
	"github.com/billyribeiro-ux/cognition-os/internal/repository"
	"github.com/billyribeiro-ux/cognition-os/internal/utils"
)

const deviceTokenSessionKey = "deviceToken"

// DeviceIdentity resolves the session's device token to a user row,
// minting a token on first contact. There are no credentials; the
// cookie is the identity.
func DeviceIdentity(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, ok := session.Get(deviceTokenSessionKey).(string)
		if !ok || token == "" {
			fresh, err := utils.GenerateSecureToken(32)
			if err != nil {
				log.Error("Failed to mint device token", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity unavailable"})
				return
			}
			token = fresh
			session.Set(deviceTokenSessionKey, token)
			if err := session.Save(); err != nil {
				log.Error("Failed to save session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity unavailable"})
				return
			}
		}

		user, err := repository.GetOrCreateUserByDevice(c.Request.Context(), token)
		if err != nil {
			log.Error("Failed to resolve device user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity unavailable"})
			return
		}

		c.Set(handlers.UserContextKey, user)
		c.Next()
	}
}
