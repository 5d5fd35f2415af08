package app

import (
	"time"

	"github.com/hyperifyio/jobdigest/internal/aggregate"
	"github.com/hyperifyio/jobdigest/internal/digest"
	"github.com/hyperifyio/jobdigest/internal/httpclient"
	"github.com/hyperifyio/jobdigest/internal/notify"
)

// Config holds runtime configuration for the application. It is built once by
// Load and passed by value afterwards.
type Config struct {
	// Delivery
	TelegramToken  string
	TelegramChatID string
	TelegramAPIURL string

	// Search
	BingKey         string
	BingEndpoint    string
	SerpAPIKey      string
	SerpAPIEndpoint string
	SearchFile      string
	Keywords        []string
	PriorityDomains []string
	SiteScope       []string
	ResultCap       int
	RatePerSec      float64
	HTTPTimeout     time.Duration

	// Digest
	MaxDisplayed int
	MaxLength    int
	Timezone     string
	Schedule     string
	ArchivePath  string

	// Extra sinks
	SNSTopicARN        string
	SQSQueueURL        string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Behavior
	DryRun    bool
	Verbose   bool
	LogFormat string
}

// DefaultKeywords are the phrases searched when no configuration overrides them.
var DefaultKeywords = []string{
	`"software engineer" "hiring"`,
	`"software developer" "hiring"`,
	`"full stack engineer" "job"`,
	`"backend engineer" "job"`,
}

// DefaultPriorityDomains rank postings from these employers and boards first.
var DefaultPriorityDomains = []string{
	"google.com", "amazon.com", "microsoft.com", "meta.com", "apple.com",
	"netflix.com", "github.com", "stripe.com", "palantir.com", "wellfound.io",
	"linkedin.com", "indeed.com", "airbnb.com", "uber.com",
}

// Defaults returns a Config populated with built-in values.
func Defaults() Config {
	return Config{
		TelegramAPIURL:  notify.DefaultTelegramAPI,
		Keywords:        append([]string(nil), DefaultKeywords...),
		PriorityDomains: append([]string(nil), DefaultPriorityDomains...),
		SiteScope:       append([]string(nil), aggregate.DefaultSiteScope...),
		ResultCap:       10,
		HTTPTimeout:     httpclient.DefaultTimeout,
		MaxDisplayed:    digest.DefaultMaxDisplayed,
		MaxLength:       digest.DefaultMaxLength,
		LogFormat:       "console",
	}
}

func (c Config) awsConfig() notify.AWSConfig {
	return notify.AWSConfig{
		Region:          c.AWSRegion,
		AccessKeyID:     c.AWSAccessKeyID,
		SecretAccessKey: c.AWSSecretAccessKey,
	}
}
