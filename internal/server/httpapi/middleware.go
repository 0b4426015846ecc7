package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxopay/backend/internal/server/auth"
)

const identityContextKey = "identity"

// requireSession is the session guard: it extracts the bearer token from the
// Authorization header, verifies it and attaches the resolved identity to the
// request context. It performs no other side effects; requests either proceed
// annotated or are rejected with 401.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing Authorization header"})
		}

		// Everything after the scheme; "Bearer" with nothing following is
		// a malformed header, not a missing one.
		var token string
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
			token = strings.TrimSpace(parts[1])
		}
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid Authorization header"})
		}

		identity, err := auth.IdentityFromToken(token, s.jwtSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
		}

		c.Set(identityContextKey, identity)
		return next(c)
	}
}

// sessionIdentity returns the identity the guard attached to the request.
func sessionIdentity(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(auth.Identity)
	return identity, ok
}
