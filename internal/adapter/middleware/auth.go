package middleware

import (
	"errors"
	"net/http"
	"strings"

	"mata-finance/internal/domain/user"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const actorContextKey = "actor"

// Actor is the authenticated caller, resolved once per request from the
// Ax-Actor-Id header. Header-based identity stands in for the gateway that
// normally terminates auth in front of this service.
type Actor struct {
	UserID string
	Role   user.Role
}

func Auth(users user.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actorID := strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id"))
			if actorID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Ax-Actor-Id"})
			}
			if !reHex32.MatchString(actorID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid Ax-Actor-Id"})
			}
			u, err := users.GetByUserID(c.Request().Context(), actorID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown actor"})
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth lookup failed"})
			}
			SetActor(c, Actor{UserID: u.UserID, Role: u.Role})
			return next(c)
		}
	}
}

func RequireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ActorFrom(c).Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "role " + string(role) + " required"})
			}
			return next(c)
		}
	}
}

func SetActor(c echo.Context, a Actor) { c.Set(actorContextKey, a) }

func ActorFrom(c echo.Context) Actor {
	if a, ok := c.Get(actorContextKey).(Actor); ok {
		return a
	}
	return Actor{}
}
