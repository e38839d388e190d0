// Package server wires configuration, storage, services and the gRPC
// transport into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	"github.com/dmitrijs2005/invitekeeper/internal/server/auth"
	"github.com/dmitrijs2005/invitekeeper/internal/server/config"
	"github.com/dmitrijs2005/invitekeeper/internal/server/maildrop"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/invitekeeper/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/invitekeeper/internal/server/grpc"
)

var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

var logOutput io.Writer = os.Stdout

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	db, err := openDB(ctx, c.DatabaseDSN, c.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher := auth.NewHasher(auth.ParseCost(c.HashRounds))
	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenIssuer)

	as, err := services.NewAuthService(db, rm, hasher, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var dispatcher services.Dispatcher = maildrop.NewLogDispatcher(logger)
	if c.S3Bucket != "" {
		d, err := maildrop.NewS3Dispatcher(ctx, maildrop.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("maildrop init error: %w", err)
		}
		dispatcher = d
	}

	srv := gs.NewGRPCServer(gs.Options{
		Address: c.EndpointAddrGRPC,
		Domain:  c.Domain,
		Workers: int64(c.Workers),
		Timeout: c.OperationTimeout,
	}, gs.Services{
		Auth:          as,
		Invitations:   services.NewInvitationService(db, rm, dispatcher, logger),
		Registrations: services.NewRegistrationService(db, rm, hasher, logger),
		Tokens:        codec,
	}, logger)

	logger.Info(ctx, "App initialized", "hash_cost", hasher.Cost(), "workers", c.Workers)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// waitForSignal cancels the app on the first termination signal. It returns
// once a signal arrives or ctx is done.
func (app *App) waitForSignal(ctx context.Context, cancelFunc context.CancelFunc) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		app.logger.Info(ctx, "Signal received, shutting down", "signal", sig.String())
		cancelFunc()
	case <-ctx.Done():
	}
	return nil
}

// Run serves until ctx is done or a termination signal arrives, then closes
// the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.waitForSignal(gctx, cancelFunc)
	})
	g.Go(func() error {
		return app.server.Run(gctx)
	})

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(context.Background(), "db close failed", "error", cerr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
