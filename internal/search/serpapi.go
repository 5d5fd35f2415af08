package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperifyio/jobdigest/internal/httpclient"
)

// SerpAPIEndpoint is the SerpAPI JSON search endpoint.
const SerpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPI implements Provider against SerpAPI's Google engine. The credential
// travels as the api_key query parameter.
type SerpAPI struct {
	APIKey   string
	Engine   string // optional, defaults to "google"
	Endpoint string // optional, defaults to SerpAPIEndpoint
	Client   httpclient.Client
}

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, errors.New("serpapi: missing api key")
	}
	if limit <= 0 {
		limit = 10
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = SerpAPIEndpoint
	}
	engine := s.Engine
	if engine == "" {
		engine = "google"
	}
	hc := s.Client
	if hc == nil {
		hc = httpclient.New(0)
	}

	params := map[string]string{
		"engine":  engine,
		"q":       query,
		"api_key": s.APIKey,
		"num":     strconv.Itoa(limit),
	}
	resp, err := hc.Get(ctx, endpoint, params, nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: request: %w", err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("serpapi: status %d body: %s", code, responseSnippet(resp.Body()))
	}

	var sr serpResponse
	if err := json.Unmarshal(resp.Body(), &sr); err != nil {
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("serpapi: %s", sr.Error)
	}
	out := make([]Result, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		u := strings.TrimSpace(r.Link)
		if u == "" {
			continue
		}
		title := resultTitle(r.Title, u)
		out = append(out, Result{
			Title:   title,
			URL:     u,
			Snippet: strings.TrimSpace(r.Snippet),
			Source:  s.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}
