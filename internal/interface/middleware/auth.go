package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nareswara/libris/pkg/helpers"
	"github.com/nareswara/libris/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// Auth validates the bearer token and injects the authenticated identity into
// the Gin context. The header must match the exact two-token scheme
// "Bearer <token>". The store is never consulted; a still-valid token is
// accepted until its natural expiry.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing authorization header", nil)
			response.AbortJSON(c, resp)
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "malformed authorization header", nil)
			response.AbortJSON(c, resp)
			return
		}
		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			response.AbortJSON(c, resp)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}
