package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/criticalsnake/tracks-backend-go/internal/auth"
	"github.com/criticalsnake/tracks-backend-go/pkg/response"
)

// SubjectKey is the context key holding the authenticated token subject.
const SubjectKey = "subject"

// Auth requires a valid bearer token signed with secret.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Unauthorized(c, "Missing bearer token")
			return
		}

		claims, err := auth.VerifyToken(secret, token)
		if err != nil {
			log.Printf("[Auth] Rejected token from %s: %v", c.ClientIP(), err)
			response.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
