package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionKey is where SessionRequired stores the looked-up id.
const SessionKey = "sessionID"

type SessionLookup interface {
	Exists(id string) bool
}

// SessionRequired rejects requests whose :sessionID is not a running session.
func SessionRequired(sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("sessionID")
		if id == "" || !sessions.Exists(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			c.Abort()
			return
		}
		c.Set(SessionKey, id)
		c.Next()
	}
}
