package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidConfig marks every error that should stop the process before any
// network activity.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrMissingEnv is returned when a required environment variable is unset.
var ErrMissingEnv = fmt.Errorf("%w: missing required environment variable", ErrInvalidConfig)

// Load builds the configuration from defaults, an optional config file named
// by JOBDIGEST_CONFIG and the environment, in that order of precedence. Dotenv
// files are read first: ".env" in the working directory, then JOBDIGEST_ENV_FILE,
// the later file winning on shared keys.
func Load() (Config, error) {
	envFiles := []string{".env"}
	if p := strings.TrimSpace(os.Getenv("JOBDIGEST_ENV_FILE")); p != "" {
		envFiles = append(envFiles, p)
	}
	if err := LoadEnvFiles(envFiles...); err != nil {
		return Config{}, fmt.Errorf("%w: load env file: %v", ErrInvalidConfig, err)
	}

	cfg := Defaults()
	if p := strings.TrimSpace(os.Getenv("JOBDIGEST_CONFIG")); p != "" {
		fc, err := LoadConfigFile(p)
		if err != nil {
			return Config{}, fmt.Errorf("%w: config file %s: %v", ErrInvalidConfig, p, err)
		}
		ApplyFileConfig(&cfg, fc)
	}
	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges. Delivery credentials
// may be omitted in dry-run mode since nothing is sent.
func Validate(cfg Config) error {
	if !cfg.DryRun {
		if strings.TrimSpace(cfg.TelegramToken) == "" {
			return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN", ErrMissingEnv)
		}
		if strings.TrimSpace(cfg.TelegramChatID) == "" {
			return fmt.Errorf("%w: TELEGRAM_CHAT_ID", ErrMissingEnv)
		}
	}
	if len(cfg.Keywords) == 0 {
		return fmt.Errorf("%w: no search keywords", ErrInvalidConfig)
	}
	if cfg.ResultCap <= 0 {
		return fmt.Errorf("%w: result cap must be positive, got %d", ErrInvalidConfig, cfg.ResultCap)
	}
	if cfg.MaxDisplayed <= 0 || cfg.MaxLength <= 0 {
		return fmt.Errorf("%w: digest limits must be positive", ErrInvalidConfig)
	}
	if cfg.RatePerSec < 0 {
		return fmt.Errorf("%w: search rate must not be negative", ErrInvalidConfig)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", ErrInvalidConfig)
	}
	if _, err := location(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	if s := strings.TrimSpace(cfg.Schedule); s != "" {
		if _, err := cron.ParseStandard(s); err != nil {
			return fmt.Errorf("%w: schedule %q: %v", ErrInvalidConfig, s, err)
		}
	}
	switch cfg.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, cfg.LogFormat)
	}
	return nil
}

func location(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(strings.TrimSpace(name))
}
