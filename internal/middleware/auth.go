package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/pkg/jwt"
	"stadiumbooking/internal/pkg/response"
	"stadiumbooking/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxBanned = "banned"
)

// UserLookup refreshes role and ban state from the store on every request.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth validates the bearer token and stores the caller on the context.
// users may be nil, in which case the token claims are trusted as is.
func JWTAuth(jwtService *jwt.Service, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		role := claims.Role
		banned := false
		if users != nil {
			u, err := users.GetByID(c.Request.Context(), claims.UserID)
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "User no longer exists")
				return
			}
			if err != nil {
				_ = c.Error(err)
				response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load user")
				return
			}
			role = string(u.Role)
			banned = u.Banned
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, role)
		c.Set(ctxBanned, banned)
		c.Next()
	}
}

// CallerFrom returns the identity stored by JWTAuth. Outside an
// authenticated route it returns the zero Caller.
func CallerFrom(c *gin.Context) access.Caller {
	return access.Caller{
		UserID: c.GetInt64(ctxUserID),
		Role:   domain.UserRole(c.GetString(ctxRole)),
		Banned: c.GetBool(ctxBanned),
	}
}
