package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxopay/backend/internal/common"
)

// writeError maps sentinel errors to HTTP responses. Provider and
// configuration messages pass through; anything unrecognized collapses to a
// generic 500 so internals never leak.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, common.ErrorAlreadyExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "User already exists"})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	case errors.Is(err, common.ErrorInvalidToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	case errors.Is(err, common.ErrorNotConfigured):
		s.logger.Error(c.Request().Context(), "misconfiguration", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	case errors.Is(err, common.ErrorProvider):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		s.logger.Error(c.Request().Context(), "unexpected error", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unexpected server error"})
	}
}
