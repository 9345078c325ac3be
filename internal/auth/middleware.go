package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glad47/pos-sync-service/internal/obs"
	"github.com/glad47/pos-sync-service/internal/respond"
)

// TokenValidator is the allow/deny gate evaluated before any catalog
// query runs.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (bool, error)
}

// RequireToken guards a route group with the token store. POS clients
// historically send the bare token in the Authorization header; a
// Bearer prefix is accepted too.
func RequireToken(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			respond.Unauthorized(c)
			return
		}
		ok, err := v.Validate(c.Request.Context(), token)
		if err != nil {
			obs.Logger.Error("token validation failed", "err", err)
			respond.Unauthorized(c)
			return
		}
		if !ok {
			respond.Unauthorized(c)
			return
		}
		c.Next()
	}
}
