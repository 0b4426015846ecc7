// Package server initializes and runs the backend: it builds the store,
// provider gateway and application services from configuration, starts the
// HTTP API and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/luxopay/backend/internal/common"
	"github.com/luxopay/backend/internal/logging"
	"github.com/luxopay/backend/internal/server/config"
	"github.com/luxopay/backend/internal/server/httpapi"
	"github.com/luxopay/backend/internal/server/providers"
	"github.com/luxopay/backend/internal/server/repositories/repomanager"
	"github.com/luxopay/backend/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	users    *services.UserService
	payments *services.PaymentService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON()

	// A missing signing secret would fail every token issuance; treat it as
	// fatal misconfiguration instead of a per-request error.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is not set", common.ErrorNotConfigured)
	}

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	gateway := providers.NewGateway(cfg)

	us := services.NewUserService(repos.Users(), cfg)
	ps := services.NewPaymentService(repos.Payments(), gateway, logger)

	return &App{config: cfg, logger: logger, repos: repos, users: us, payments: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.users, app.payments, app.config.JWTSecret)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
