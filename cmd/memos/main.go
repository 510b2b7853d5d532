package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/99minutos/memo-service/internal/app"
	"github.com/99minutos/memo-service/internal/infrastructure/config"
	"github.com/99minutos/memo-service/pkg/logger"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "memos",
		Usage:   "multi-user memo service",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "schema",
				Usage:  "create the database tables and exit",
				Action: schema,
			},
		},
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "memos",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to start")
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("failed to release resources")
		}
	}()

	return a.Run(ctx, nil)
}

func schema(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production(), Service: "memos"})
	if err := app.EnsureSchema(ctx, cfg); err != nil {
		return err
	}
	log.Info().Str("db_driver", cfg.DB.Driver).Msg("schema ready")
	return nil
}
