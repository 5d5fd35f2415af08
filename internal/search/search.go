package search

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// Result represents a single search hit from any provider.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Source  string // provider name for observability
}

// Provider is a minimal interface for search providers.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// ErrNotConfigured is returned by Unconfigured for every query.
var ErrNotConfigured = errors.New("no search provider credential configured")

// Unconfigured stands in when no provider credential is present. Every query
// fails so callers degrade each phrase to zero results.
type Unconfigured struct{}

func (Unconfigured) Name() string { return "none" }

func (Unconfigured) Search(context.Context, string, int) ([]Result, error) {
	return nil, ErrNotConfigured
}

// responseSnippet returns a bounded excerpt of a response body for error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
