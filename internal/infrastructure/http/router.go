package http

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/99minutos/memo-service/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the liveness and readiness probes on e. They sit
// outside every session and auth middleware.
func RegisterProbes(e *echo.Echo, db handlers.Pinger, rdb *redis.Client) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
