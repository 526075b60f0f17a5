// Package server initializes and runs the NoteVault server: storage,
// services, the gRPC endpoint and the ops HTTP endpoint.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/auth"
	"github.com/dmitrijs2005/notevault/internal/server/config"
	"github.com/dmitrijs2005/notevault/internal/server/metrics"
	"github.com/dmitrijs2005/notevault/internal/server/ops"
	"github.com/dmitrijs2005/notevault/internal/server/ratelimit"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notevault/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/notevault/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	limiter ratelimit.Limiter
	grpc    *gs.GRPCServer
	ops     *ops.Server
}

// NewApp wires storage, services and servers from c. Log output goes to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(w, c.LogLevel)

	tokens, err := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	repos, err := openRepositories(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	limiter, err := openLimiter(ctx, c, logger)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("rate limiter init error: %w", err)
	}

	m := metrics.New()

	guard := services.NewOwnershipGuard(tokens, repos.Notes(), logger)
	as := services.NewAuthService(repos.Users(), auth.NewPasswordHasher(), tokens, logger)
	ns := services.NewNoteService(repos.Notes(), guard, logger)

	health := ops.NewHealth(logger).Add("storage", repos)
	if p, ok := limiter.(ops.Pinger); ok {
		health.Add("redis", p)
	}

	return &App{
		config:  c,
		logger:  logger,
		repos:   repos,
		limiter: limiter,
		grpc:    gs.NewGRPCServer(c.EndpointAddrGRPC, logger, as, ns, guard, limiter, m),
		ops:     ops.NewServer(c.EndpointAddrHTTP, ops.NewRouter(health, m.Handler()), logger),
	}, nil
}

func openRepositories(ctx context.Context, c *config.Config, l logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		l.Warn(ctx, "no database configured, notes are kept in memory")
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, c.DatabaseDSN)
}

func openLimiter(ctx context.Context, c *config.Config, l logging.Logger) (ratelimit.Limiter, error) {
	if c.RedisAddr == "" {
		l.Info(ctx, "login attempts are counted in process")
		return ratelimit.NewMemoryLimiter(c.LoginAttemptsLimit, c.LoginAttemptsWindow), nil
	}
	return ratelimit.NewRedisLimiter(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB,
		c.LoginAttemptsLimit, c.LoginAttemptsWindow)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the servers fails, and then releases storage and the limiter.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpc.Run(gctx) })
	if app.config.EndpointAddrHTTP != "" {
		g.Go(func() error { return app.ops.Run(gctx) })
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
	}

	if cerr := app.limiter.Close(); cerr != nil {
		app.logger.Warn(ctx, "rate limiter close error", "error", cerr)
	}
	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Warn(ctx, "storage close error", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
