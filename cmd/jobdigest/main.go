package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/jobdigest/internal/app"
)

func main() {
	// Configure zerolog for human-friendly console output by default
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.DefaultContextLogger = &log.Logger

	cfg, err := app.Load()
	if err != nil {
		log.Error().Err(err).Msg("configuration error")
		os.Exit(exitCode(err))
	}
	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		code := exitCode(err)
		stop()
		os.Exit(code)
	}
}

func configureLogging(cfg app.Config) {
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// exitCode maps a run error to the process status: 1 for configuration
// problems, which are detected before any network activity, and 0 otherwise.
// Delivery failures are logged but do not fail the process.
func exitCode(err error) int {
	if err != nil && errors.Is(err, app.ErrInvalidConfig) {
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
