package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Skipper decides whether a request bypasses authentication.
type Skipper func(c echo.Context) bool

// PublicRouteSkipper skips authentication for the health check and the
// public auth/doctor-discovery endpoints.
func PublicRouteSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	switch path {
	case "/health", "/auth/register", "/auth/login", "/doctor/search":
		return true
	}
	// GET /doctor/:id is public; everything else under /doctor requires auth.
	if strings.HasPrefix(path, "/doctor/") && c.Request().Method == http.MethodGet {
		rest := strings.TrimPrefix(path, "/doctor/")
		return rest != "profile" && !strings.Contains(rest, "/")
	}
	return false
}

// JWTMiddleware validates the Authorization bearer token and places the
// resolved (userID, role) pair on the request context.
func JWTMiddleware(secret string, skipper Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := ParseToken(parts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := WithIdentity(c.Request().Context(), claims.UserID, claims.Role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
