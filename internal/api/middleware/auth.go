package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/logica-uic/contest-backend/pkg/sessiontok"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "authToken"

// Auth is the route guard: it extracts the session token (authToken cookie
// first, Authorization bearer as fallback), verifies it, and injects the
// claims into the request context. Requests with missing, invalid, or
// expired tokens never reach protected handlers.
func Auth(tokens *sessiontok.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := tokens.Verify(extractToken(c))
			if err != nil {
				switch {
				case errors.Is(err, sessiontok.ErrTokenMissing):
					return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
				case errors.Is(err, sessiontok.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
				}
			}

			c.Set("identity", claims.Identity)
			c.Set("name", claims.Name)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
