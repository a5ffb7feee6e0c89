package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/torebek/gigledger/internal/auth"
	"github.com/torebek/gigledger/internal/model"
)

const principalKey = "principal"

// ProfileSource resolves caller profiles; a token whose subject has no
// profile row is rejected the same way as an invalid one.
type ProfileSource interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

func Auth(parser *auth.Parser, profiles ProfileSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		principal, err := parser.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if _, err := profiles.GetProfile(c.Request.Context(), principal.ProfileID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown profile"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}
