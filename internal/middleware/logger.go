package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		subject := ""
		if s, ok := c.Get(SubjectKey); ok {
			subject = " sub=" + s.(string)
		}

		log.Printf("[HTTP] %s %s %s %d %v%s %s",
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			subject,
			c.Errors.String(),
		)
	}
}
