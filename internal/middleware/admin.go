package middleware

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/gin-gonic/gin"
)

// AdminRequired ensures the caller has the admin role
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id_str"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !models.IsAdmin(GetCurrentRole(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
