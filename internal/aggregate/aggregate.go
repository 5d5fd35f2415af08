package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/jobdigest/internal/posting"
	"github.com/hyperifyio/jobdigest/internal/search"
)

// DefaultSiteScope restricts queries to careers pages, job boards and known
// listing domains.
var DefaultSiteScope = []string{"careers", "jobs", "linkedin.com/jobs", "wellfound.io"}

// ScopedQuery appends a site: disjunction to phrase. An empty scope uses
// DefaultSiteScope.
func ScopedQuery(phrase string, scope []string) string {
	if len(scope) == 0 {
		scope = DefaultSiteScope
	}
	parts := make([]string, 0, len(scope))
	for _, s := range scope {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, "site:"+s)
		}
	}
	if len(parts) == 0 {
		return phrase
	}
	return phrase + " " + strings.Join(parts, " OR ")
}

// Collector fans keyword phrases out to a single search provider.
type Collector struct {
	Provider  search.Provider
	SiteScope []string
	// Limiter paces queries when set.
	Limiter *rate.Limiter
}

// Collect searches every phrase in order and returns the deduplicated postings
// with priority-domain matches first. A failing phrase contributes nothing and
// never stops the others. Cancellation stops issuing queries; whatever was
// gathered is still returned.
func (c *Collector) Collect(ctx context.Context, phrases []string, priority []string, capPerQuery int) []posting.Posting {
	logger := zerolog.Ctx(ctx)
	provider := c.Provider
	if provider == nil {
		provider = search.Unconfigured{}
	}

	groups := make([][]posting.Posting, 0, len(phrases))
	for _, phrase := range phrases {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Msg("search interrupted")
			break
		}
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				logger.Warn().Err(err).Msg("search interrupted")
				break
			}
		}
		results, err := searchOne(ctx, provider, ScopedQuery(phrase, c.SiteScope), capPerQuery)
		if err != nil {
			logger.Warn().Err(err).Str("phrase", phrase).Str("provider", provider.Name()).Msg("search error")
			continue
		}
		logger.Debug().Str("phrase", phrase).Int("results", len(results)).Msg("search ok")
		group := make([]posting.Posting, 0, len(results))
		for _, r := range results {
			group = append(group, posting.Posting{Title: r.Title, URL: r.URL})
		}
		groups = append(groups, group)
	}

	merged := Merge(groups)
	return PrioritySort(merged, priority)
}

// searchOne runs a single query, turning a provider panic into an error.
func searchOne(ctx context.Context, p search.Provider, query string, limit int) (res []search.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%s: panic: %v", p.Name(), r)
		}
	}()
	return p.Search(ctx, query, limit)
}

// Merge concatenates groups in order, keeping the first posting seen for each
// exact URL. Postings without a URL are dropped.
func Merge(groups [][]posting.Posting) []posting.Posting {
	seen := map[string]struct{}{}
	out := make([]posting.Posting, 0, 64)
	for _, g := range groups {
		for _, p := range g {
			if p.URL == "" {
				continue
			}
			if _, ok := seen[p.URL]; ok {
				continue
			}
			seen[p.URL] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// PrioritySort returns a copy of in where every posting matching a priority
// domain precedes every other posting. Order inside each group is preserved.
func PrioritySort(in []posting.Posting, priority []string) []posting.Posting {
	out := make([]posting.Posting, len(in))
	copy(out, in)
	rank := make(map[string]int, len(out))
	for _, p := range out {
		if !p.IsPriority(priority) {
			rank[p.URL] = 1
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].URL] < rank[out[j].URL]
	})
	return out
}
