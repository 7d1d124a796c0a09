package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lendtracker/internal/domain/user"
	"lendtracker/internal/usecase/auth"
)

const ownerIDKey = "owner_id"

// AuthMiddleware resolves the bearer token into an owner id and stashes it on
// the request context. Handlers thread that id explicitly into every usecase
// call.
func AuthMiddleware(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			}
			ownerID, err := svc.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
			}
			c.Set(ownerIDKey, ownerID)
			return next(c)
		}
	}
}

// RequireAdmin lets only ADMIN accounts through. It runs after AuthMiddleware,
// so the owner id in the context is already a verified token subject.
func RequireAdmin(users user.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := users.GetByUserID(c.Request().Context(), ownerID(c))
			if err != nil || u.Role != user.RoleAdmin {
				return c.JSON(http.StatusForbidden, ErrorResponse{Error: "admin access required"})
			}
			return next(c)
		}
	}
}

func ownerID(c echo.Context) string {
	s, _ := c.Get(ownerIDKey).(string)
	return s
}

// OwnerID exposes the resolved owner for middlewares outside this package.
func OwnerID(c echo.Context) string { return ownerID(c) }

// WithOwner stamps an owner id onto the context the same way AuthMiddleware
// does; middleware tests use it in place of a real token exchange.
func WithOwner(c echo.Context, id string) { c.Set(ownerIDKey, id) }
