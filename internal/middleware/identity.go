package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Aknes122/securitycash/internal/config"
	"github.com/Aknes122/securitycash/internal/logger"
)

const identityKey = "identity"

// Identity returns a Gin middleware that resolves the caller's
// identity from an optional Bearer token issued by the external auth
// provider. A missing or invalid token is not an error: the request
// simply proceeds anonymously, which maps to the local-only session.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.Next()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.Get().JWTSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			logger.Get().Debugw("ignoring invalid bearer token", "error", err)
			c.Next()
			return
		}

		c.Set(identityKey, claims.Subject)
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity from the Gin
// context, or "" for an anonymous request.
func IdentityFrom(c *gin.Context) string {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
