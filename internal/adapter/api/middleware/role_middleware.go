package middleware

import (
	"net/http"
	"strings"

	"bizbid/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

// Require loads the authenticated user's profile and rejects callers whose
// role is not in the allow list.
func (m *RoleMiddleware) Require(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			user, err := m.userRepo.GetByID(c.Request().Context(), uid)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify privileges")
			}

			if !user.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "Requires role: "+strings.Join(roles, " or "))
			}

			return next(c)
		}
	}
}
