package handlers

import (
	"github.com/gin-gonic/gin"

	"social-media-service/internal/middleware"
)

const maxMessageTextLength = 255

// validMessageText enforces the 1..255 length bound shared by message
// creation and text updates.
func validMessageText(text string) bool {
	return len(text) > 0 && len(text) <= maxMessageTextLength
}

func requestIDFromContext(c *gin.Context) string {
	return c.GetString(middleware.ContextKey)
}
