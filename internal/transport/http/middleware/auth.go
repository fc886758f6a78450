package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/photoshare/pkg/auth"
	"github.com/iamasit07/photoshare/pkg/httputil"
)

const userIDKey = "user_id"

// AuthMiddleware rejects requests without a valid signed bearer token.
func AuthMiddleware(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.BearerToken(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Please log in to continue"}})
			return
		}

		claims, err := signer.ValidateAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Your session has expired. Please log in again."}})
			return
		}

		c.Set(userIDKey, claims.ID)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, err := httputil.BearerToken(c.Request); err == nil {
			if claims, err := signer.ValidateAccessToken(tokenString); err == nil {
				c.Set(userIDKey, claims.ID)
			}
		}
		c.Next()
	}
}

// UserID is the authenticated caller, or 0.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
