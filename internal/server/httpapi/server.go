// Package httpapi exposes the backend over HTTP: routing, the bearer-token
// session guard, request/response shapes and the mapping from sentinel
// errors to statuses.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/luxopay/backend/internal/logging"
	"github.com/luxopay/backend/internal/server/services"
)

type Server struct {
	address   string
	users     *services.UserService
	payments  *services.PaymentService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, ps *services.PaymentService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		payments:  ps,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CORS())

	s.registerRoutes(e)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = e.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) registerRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", s.health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.GET("/me", s.me, s.requireSession)

	paymentsGroup := api.Group("/payments", s.requireSession)
	paymentsGroup.POST("/stripe/create-intent", s.createStripeIntent)
	paymentsGroup.POST("/paypal/create-order", s.createPayPalOrder)
	paymentsGroup.GET("/history", s.history)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
