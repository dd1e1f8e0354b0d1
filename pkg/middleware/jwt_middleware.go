package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diplomakids/pkg/utils"
)

const (
	FamilyIDKey = "family_id"
	EmailKey    = "email"
)

func JWTAuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := issuer.Verify(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(FamilyIDKey, claims.FamilyID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// FamilyID returns the authenticated family. ok is false on unauthenticated routes.
func FamilyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(FamilyIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
