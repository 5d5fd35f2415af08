package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// schedule runs RunOnce on every tick of the cron expression until ctx is
// done. Ticks that arrive while a pass is still running are skipped.
func (a *App) schedule(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	cl := cronLogger{l: logger.With().Str("component", "cron").Logger()}
	c := cron.New(
		cron.WithLocation(a.loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	id, err := c.AddFunc(a.cfg.Schedule, func() {
		if err := a.RunOnce(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("%w: schedule %q: %v", ErrInvalidConfig, a.cfg.Schedule, err)
	}
	c.Start()
	logger.Info().Str("schedule", a.cfg.Schedule).Time("next", c.Entry(id).Next).Msg("scheduler started")

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info().Msg("scheduler stopped")
	return ctx.Err()
}
