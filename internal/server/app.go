// Package server initializes and runs the idkeeper server: it opens the
// credential store, builds the account service and serves it over gRPC until
// the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/idkeeper/internal/cryptox"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
	"github.com/dmitrijs2005/idkeeper/internal/server/auth"
	"github.com/dmitrijs2005/idkeeper/internal/server/config"
	"github.com/dmitrijs2005/idkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/idkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/idkeeper/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
}

// NewApp validates c, opens the store and wires the account service. Logs go
// to stdout as JSON.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSON(logOut, c.LogLevel)

	hasher, err := cryptox.NewHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("issuer init error: %w", err)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := services.NewAccountService(db, m, hasher, issuer, c)

	return &App{config: c, logger: logger, db: db, accountService: as}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService,
		app.config.Workers, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "err", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
