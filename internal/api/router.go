package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/memo-service/docs"
	"github.com/99minutos/memo-service/internal/api/handler"
	"github.com/99minutos/memo-service/internal/api/metrics"
	"github.com/99minutos/memo-service/internal/api/middleware"
	"github.com/99minutos/memo-service/internal/api/view"
	"github.com/99minutos/memo-service/internal/core/ports"
	infrahttp "github.com/99minutos/memo-service/internal/infrastructure/http"
	"github.com/99minutos/memo-service/internal/infrastructure/http/handlers"
	"github.com/99minutos/memo-service/internal/infrastructure/session"
)

// Options carries the dependencies of the HTTP surface.
type Options struct {
	Logger      zerolog.Logger
	AuthService ports.AuthService
	MemoService ports.MemoService
	Sessions    session.Store

	// DB and Redis back the readiness probe; Redis may be nil.
	DB    handlers.Pinger
	Redis *redis.Client

	// Registerer and Gatherer default to the global Prometheus registry. Both
	// the HTTP series and the memos_* counters go to Registerer.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	if err := metrics.Register(opts.Registerer); err != nil {
		panic(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = view.MustNewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "memos",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health")
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(opts.AuthService)
	memoHandler := handler.NewMemoHandler(opts.MemoService)
	pageHandler := handler.NewPageHandler()
	withSession := middleware.Session(opts.Sessions, opts.Logger)

	// --- Pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/about", pageHandler.About)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login, withSession)
	e.POST("/logout", authHandler.Logout, withSession)

	// --- Memo routes (session user required) ---
	memos := e.Group("/memos", withSession, middleware.RequireAccount(opts.AuthService))
	memos.POST("", memoHandler.Create)
	memos.GET("", memoHandler.List)
	memos.PUT("/:memo_id", memoHandler.Update)
	memos.DELETE("/:memo_id", memoHandler.Delete)

	// --- Operations ---
	infrahttp.RegisterProbes(e, opts.DB, opts.Redis)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
