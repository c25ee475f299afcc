package middleware

import (
	"net/http"
	"strings"

	"DouDizhu/internal/auth"
	"DouDizhu/internal/utils"
	"DouDizhu/internal/websocket"

	"github.com/gin-gonic/gin"
)

// JwtAuthMiddleware checks the seat ticket (query ?ticket= or Bearer header)
// and stores the player name under websocket.TicketKey. An empty secret
// lets every request through unauthenticated.
func JwtAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		// 浏览器的 WebSocket 不能带 header，所以优先读 query
		raw := c.Query("ticket")
		if raw == "" {
			raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing ticket"})
			return
		}

		name, err := auth.ParseTicket(secret, raw)
		if err != nil {
			utils.Log.Debug("ticket rejected", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid ticket"})
			return
		}
		c.Set(websocket.TicketKey, name)
		c.Next()
	}
}
