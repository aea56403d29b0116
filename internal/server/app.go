// Package server wires configuration, storage, the token issuer and both
// transports into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   *redis.Client
	service *services.AuthService
}

// NewApp connects to storage and builds the service. It fails when the
// token configuration is unusable.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	issuer, err := auth.NewIssuer(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	hasher, err := auth.NewPasswordHasher(bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	app := &App{config: cfg, logger: logger, db: db}

	var store refreshtokens.Store
	switch cfg.RefreshStore {
	case config.StoreRedis:
		rc, err := refreshtokens.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		app.redis = rc
		store = refreshtokens.NewRedisStore(rc, issuer.RefreshTTL())
	default:
		store = rm.RefreshTokens(db)
	}

	app.service = services.NewAuthService(rm.Users(db), store, issuer, hasher, logger)
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and gRPC until a signal arrives or either server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "refresh_store", app.config.RefreshStore)
	app.initSignalHandler(cancelFunc)

	gin.SetMode(gin.ReleaseMode)
	httpServer := httpapi.NewServer(app.config.HTTPAddr, app.config.FrontendURL, app.service, app.logger)
	grpcServer := gs.NewGRPCServer(app.config.GRPCAddr, app.service, app.logger)

	var wg sync.WaitGroup
	for _, run := range []func(context.Context) error{httpServer.Run, grpcServer.Run} {
		wg.Add(1)
		go func(run func(context.Context) error) {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				cancelFunc()
			}
		}(run)
	}
	wg.Wait()

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
}
