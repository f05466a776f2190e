package middleware

import (
	"net/http"
	"strings"
	"time"

	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
)

// TokenFooter is the authenticated footer attached to every token.
const TokenFooter = "elango-api"

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// IssueToken encrypts a 24h PASETO v2 token carrying the user id as
// subject and the role as a custom claim, so protected routes can gate
// on role without a database read.
func IssueToken(secretKey []byte, userID string, role string) (string, error) {
	now := time.Now()
	jsonToken := paseto.JSONToken{
		Subject:    userID,
		IssuedAt:   now,
		Expiration: now.Add(24 * time.Hour),
	}
	jsonToken.Set("role", role)
	return paseto.NewV2().Encrypt(secretKey, jsonToken, TokenFooter)
}

// Auth verifies the Authorization bearer token and stores the caller's
// id and role in the request context. Missing, malformed, or expired
// tokens yield 401.
func Auth(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		var jsonToken paseto.JSONToken
		var footer string
		if err := paseto.NewV2().Decrypt(tokenString, secretKey, &jsonToken, &footer); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}
		if footer != TokenFooter || jsonToken.Validate() != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set(CtxUserID, jsonToken.Subject)
		c.Set(CtxRole, jsonToken.Get("role"))
		c.Next()
	}
}

// AdminOnly rejects authenticated callers whose role is not admin.
// Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin only."})
			return
		}
		c.Next()
	}
}
