// Package app wires configuration, storage, sessions and the HTTP router
// into a runnable service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/api"
	"github.com/99minutos/memo-service/internal/core/service"
	"github.com/99minutos/memo-service/internal/infrastructure/config"
	"github.com/99minutos/memo-service/internal/infrastructure/crypto"
	"github.com/99minutos/memo-service/internal/infrastructure/db/redis"
	"github.com/99minutos/memo-service/internal/infrastructure/db/sqldb"
	"github.com/99minutos/memo-service/internal/infrastructure/session"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// App is a fully wired service instance.
type App struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *sql.DB
	redis *goredis.Client
	echo  *echo.Echo

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

type Option func(*App)

// WithMetrics sends all metrics to reg instead of the global registry.
func WithMetrics(reg prometheus.Registerer, g prometheus.Gatherer) Option {
	return func(a *App) {
		a.registerer = reg
		a.gatherer = g
	}
}

// New connects to the configured backends, ensures the schema and builds
// the router. Close releases everything New opened.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(a)
	}

	db, dialect, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.db = db

	store := sqldb.NewStore(db, dialect)
	sessions, err := a.sessionStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.echo = api.NewRouter(api.Options{
		Logger:      log,
		AuthService: service.NewAuthService(store, crypto.NewBcryptHasher(0), log.With().Str("component", "auth").Logger()),
		MemoService: service.NewMemoService(store, log.With().Str("component", "memos").Logger()),
		Sessions:    sessions,
		DB:          store,
		Redis:       a.redis,
		Registerer:  a.registerer,
		Gatherer:    a.gatherer,
	})

	log.Info().
		Str("db_driver", string(dialect)).
		Str("session_backend", cfg.Session.Backend).
		Msg("service wired")
	return a, nil
}

// EnsureSchema creates the tables of the configured database and returns.
func EnsureSchema(ctx context.Context, cfg *config.Config) error {
	db, _, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, sqldb.Dialect, error) {
	db, dialect, err := sqldb.Connect(ctx, sqldb.Config{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.DSN,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		return nil, "", fmt.Errorf("connect database: %w", err)
	}
	if err := sqldb.EnsureSchema(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return db, dialect, nil
}

func (a *App) sessionStore(ctx context.Context) (session.Store, error) {
	opts := session.Options{
		CookieName: a.cfg.Session.CookieName,
		MaxAge:     a.cfg.Session.MaxAge,
		Secure:     a.cfg.Session.Secure,
	}

	if strings.EqualFold(a.cfg.Session.Backend, "redis") {
		rdb, err := redis.Connect(ctx, redis.Config{
			URL:      a.cfg.Redis.URL,
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redis = rdb
		return session.NewRedisStore(rdb, opts), nil
	}

	return session.NewCookieStore(a.cfg.Session.Secret, opts)
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler { return a.echo }

// Run serves HTTP on ln until ctx is cancelled, then shuts down gracefully.
// A nil ln listens on the configured port.
func (a *App) Run(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.echo,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", srv.Addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", ln.Addr().String()).Msg("http server starting")
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		a.log.Info().Msg("http server stopped")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Close releases the database pool and the Redis client.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
