package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. Environment takes precedence over the config file and defaults.
// Malformed numbers, durations and booleans are reported, not ignored.
func ApplyEnvOverrides(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	setStr := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
			}
		}
	}
	setStr(&cfg.TelegramToken, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.TelegramChatID, "TELEGRAM_CHAT_ID")
	setStr(&cfg.TelegramAPIURL, "TELEGRAM_API_URL")
	setStr(&cfg.BingKey, "BING_API_KEY")
	setStr(&cfg.BingEndpoint, "BING_ENDPOINT")
	setStr(&cfg.SerpAPIKey, "SERPAPI_KEY", "SERPAPI_API_KEY")
	setStr(&cfg.SerpAPIEndpoint, "SERPAPI_ENDPOINT")
	setStr(&cfg.SearchFile, "SEARCH_FILE")
	setStr(&cfg.Timezone, "DIGEST_TIMEZONE")
	setStr(&cfg.Schedule, "DIGEST_SCHEDULE")
	setStr(&cfg.ArchivePath, "DIGEST_ARCHIVE_PATH")
	setStr(&cfg.SNSTopicARN, "DIGEST_SNS_TOPIC_ARN")
	setStr(&cfg.SQSQueueURL, "DIGEST_SQS_QUEUE_URL")
	setStr(&cfg.AWSRegion, "AWS_REGION")
	setStr(&cfg.AWSAccessKeyID, "DIGEST_AWS_ACCESS_KEY_ID")
	setStr(&cfg.AWSSecretAccessKey, "DIGEST_AWS_SECRET_ACCESS_KEY")
	setStr(&cfg.LogFormat, "LOG_FORMAT")

	// SEARCH_KEYWORDS is ';'-separated since phrases may contain commas.
	if v := strings.TrimSpace(os.Getenv("SEARCH_KEYWORDS")); v != "" {
		cfg.Keywords = splitList(v, ";")
	}
	if v := strings.TrimSpace(os.Getenv("PRIORITY_DOMAINS")); v != "" {
		cfg.PriorityDomains = splitList(v, ",")
	}
	if v := strings.TrimSpace(os.Getenv("SEARCH_SITE_SCOPE")); v != "" {
		cfg.SiteScope = splitList(v, ",")
	}

	setInt := func(dst *int, key string) error {
		s := strings.TrimSpace(os.Getenv(key))
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, s)
		}
		*dst = n
		return nil
	}
	if err := setInt(&cfg.ResultCap, "SEARCH_RESULT_CAP"); err != nil {
		return err
	}
	if err := setInt(&cfg.MaxDisplayed, "DIGEST_MAX_DISPLAYED"); err != nil {
		return err
	}
	if err := setInt(&cfg.MaxLength, "DIGEST_MAX_LENGTH"); err != nil {
		return err
	}

	if s := strings.TrimSpace(os.Getenv("SEARCH_RATE_PER_SEC")); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: SEARCH_RATE_PER_SEC=%q is not a number", ErrInvalidConfig, s)
		}
		cfg.RatePerSec = f
	}
	if s := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT")); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%w: HTTP_TIMEOUT=%q: %v", ErrInvalidConfig, s, err)
		}
		cfg.HTTPTimeout = d
	}

	setBool := func(dst *bool, key string) error {
		s := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch s {
		case "":
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		default:
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, s)
		}
		return nil
	}
	if err := setBool(&cfg.DryRun, "DRY_RUN"); err != nil {
		return err
	}
	return setBool(&cfg.Verbose, "VERBOSE")
}

func splitList(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
