package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/jobdigest/internal/aggregate"
	"github.com/hyperifyio/jobdigest/internal/archive"
	"github.com/hyperifyio/jobdigest/internal/digest"
	"github.com/hyperifyio/jobdigest/internal/httpclient"
	"github.com/hyperifyio/jobdigest/internal/notify"
	"github.com/hyperifyio/jobdigest/internal/search"
)

// App wires one search provider, the digest formatter and the delivery sinks.
type App struct {
	cfg       Config
	loc       *time.Location
	collector *aggregate.Collector
	// primary decides the run outcome; extras are best-effort copies.
	primary notify.Sender
	extras  []notify.Sender
	now     func() time.Time
}

// New builds an App from a validated Config. It performs no network I/O.
// Errors wrap ErrInvalidConfig.
func New(ctx context.Context, cfg Config) (*App, error) {
	loc, err := location(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}

	client := httpclient.New(cfg.HTTPTimeout)
	provider := search.Choose(search.Credentials{
		BingKey:         cfg.BingKey,
		SerpAPIKey:      cfg.SerpAPIKey,
		File:            cfg.SearchFile,
		BingEndpoint:    cfg.BingEndpoint,
		SerpAPIEndpoint: cfg.SerpAPIEndpoint,
	}, client)
	if provider.Name() == "none" {
		log.Warn().Msg("no search provider configured; digests will be empty")
	}

	collector := &aggregate.Collector{Provider: provider, SiteScope: cfg.SiteScope}
	if cfg.RatePerSec > 0 {
		collector.Limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}

	a := &App{cfg: cfg, loc: loc, collector: collector, now: time.Now}

	if cfg.DryRun {
		a.primary = &notify.Writer{Out: os.Stdout}
	} else {
		tg, err := notify.NewTelegram(notify.TelegramConfig{
			Token:   cfg.TelegramToken,
			ChatID:  cfg.TelegramChatID,
			APIURL:  cfg.TelegramAPIURL,
			Timeout: cfg.HTTPTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		a.primary = tg
	}

	if cfg.SNSTopicARN != "" {
		s, err := notify.NewSNS(ctx, cfg.SNSTopicARN, cfg.awsConfig())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		a.extras = append(a.extras, s)
	}
	if cfg.SQSQueueURL != "" {
		s, err := notify.NewSQS(ctx, cfg.SQSQueueURL, cfg.awsConfig())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		a.extras = append(a.extras, s)
	}

	log.Info().
		Str("provider", provider.Name()).
		Str("delivery", a.primary.Name()).
		Int("keywords", len(cfg.Keywords)).
		Int("extra_sinks", len(a.extras)).
		Msg("app initialized")
	return a, nil
}

// RunOnce performs one collect-format-deliver pass. Search failures only
// shrink the digest; the returned error reports primary delivery failure.
// Archive and extra sink failures are logged.
func (a *App) RunOnce(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)
	start := a.now()

	postings := a.collector.Collect(ctx, a.cfg.Keywords, a.cfg.PriorityDomains, a.cfg.ResultCap)
	text := digest.Render(postings, a.now().In(a.loc), digest.Options{
		MaxDisplayed: a.cfg.MaxDisplayed,
		MaxLength:    a.cfg.MaxLength,
	})
	logger.Info().Int("postings", len(postings)).Int("chars", len([]rune(text))).Msg("digest rendered")

	if a.cfg.ArchivePath != "" {
		if err := archive.Write(a.cfg.ArchivePath, text); err != nil {
			logger.Warn().Err(err).Str("path", a.cfg.ArchivePath).Msg("archive failed")
		}
	}

	sendErr := a.primary.Send(ctx, text)
	for _, s := range a.extras {
		if err := s.Send(ctx, text); err != nil {
			logger.Warn().Err(err).Str("sink", s.Name()).Msg("extra delivery failed")
		}
	}
	if sendErr != nil {
		return fmt.Errorf("deliver via %s: %w", a.primary.Name(), sendErr)
	}
	logger.Info().Str("sink", a.primary.Name()).Dur("elapsed", a.now().Sub(start)).Msg("digest delivered")
	return nil
}

// Run executes a single pass, or keeps running on the configured schedule
// until ctx is cancelled. A failed scheduled pass does not stop the schedule.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Schedule == "" {
		return a.RunOnce(ctx)
	}
	err := a.schedule(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
