package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/model"
)

// RequireRole returns a middleware enforcing that the authenticated user
// holds one of the given roles. Roles are the closed model.Role set, not
// free-form strings, so an unknown value in a token can never match. It
// assumes JWTAuth already stored the role in the context.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(model.Role)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
			}
			return next(c)
		}
	}
}
