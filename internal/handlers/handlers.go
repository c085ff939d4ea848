// Package handlers exposes the training subsystems as a JSON API. Each
// handler builds its per-user domain objects on demand from the
// database-backed KV store, so no request handler holds user state.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billyribeiro-ux/cognition-os/internal/models"
)

// UserContextKey is where the identity middleware stores the resolved user.
const UserContextKey = "user"

// currentUser pulls the user the identity middleware resolved for this
// request. A missing user aborts with 401; the middleware normally
// guarantees presence on every /api route.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(UserContextKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user identity"})
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user identity"})
		return nil, false
	}
	return user, true
}
