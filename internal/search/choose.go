package search

import (
	"strings"

	"github.com/hyperifyio/jobdigest/internal/httpclient"
)

// Credentials lists what is available for picking a provider.
type Credentials struct {
	BingKey    string
	SerpAPIKey string
	// File points at an offline results file; only used when neither API key is set.
	File string

	// Optional endpoint overrides, e.g. for a proxy.
	BingEndpoint    string
	SerpAPIEndpoint string
}

// Choose returns the single provider a run uses. Precedence is Bing, then
// SerpAPI, then the offline file, then Unconfigured.
func Choose(creds Credentials, client httpclient.Client) Provider {
	switch {
	case strings.TrimSpace(creds.BingKey) != "":
		return &Bing{APIKey: strings.TrimSpace(creds.BingKey), Endpoint: strings.TrimSpace(creds.BingEndpoint), Client: client}
	case strings.TrimSpace(creds.SerpAPIKey) != "":
		return &SerpAPI{APIKey: strings.TrimSpace(creds.SerpAPIKey), Endpoint: strings.TrimSpace(creds.SerpAPIEndpoint), Client: client}
	case strings.TrimSpace(creds.File) != "":
		return &FileProvider{Path: strings.TrimSpace(creds.File)}
	default:
		return Unconfigured{}
	}
}
