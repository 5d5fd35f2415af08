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

// BingEndpoint is the Bing Web Search v7 endpoint.
const BingEndpoint = "https://api.bing.microsoft.com/v7.0/search"

// Bing implements Provider against the Bing Web Search API.
type Bing struct {
	APIKey   string
	Endpoint string // optional, defaults to BingEndpoint
	Client   httpclient.Client
}

func (b *Bing) Name() string { return "bing" }

func (b *Bing) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(b.APIKey) == "" {
		return nil, errors.New("bing: missing api key")
	}
	if limit <= 0 {
		limit = 10
	}
	endpoint := b.Endpoint
	if endpoint == "" {
		endpoint = BingEndpoint
	}
	hc := b.Client
	if hc == nil {
		hc = httpclient.New(0)
	}

	params := map[string]string{
		"q":              query,
		"count":          strconv.Itoa(limit),
		"responseFilter": "Webpages",
	}
	headers := map[string]string{"Ocp-Apim-Subscription-Key": b.APIKey}

	resp, err := hc.Get(ctx, endpoint, params, headers)
	if err != nil {
		return nil, fmt.Errorf("bing: request: %w", err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("bing: status %d body: %s", code, responseSnippet(resp.Body()))
	}

	var br bingResponse
	if err := json.Unmarshal(resp.Body(), &br); err != nil {
		return nil, fmt.Errorf("bing: decode response: %w", err)
	}
	if br.WebPages == nil {
		return nil, nil
	}
	out := make([]Result, 0, len(br.WebPages.Value))
	for _, v := range br.WebPages.Value {
		u := strings.TrimSpace(v.URL)
		if u == "" {
			continue
		}
		title := resultTitle(v.Name, u)
		out = append(out, Result{
			Title:   title,
			URL:     u,
			Snippet: strings.TrimSpace(v.Snippet),
			Source:  b.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type bingResponse struct {
	WebPages *struct {
		Value []struct {
			Name    string `json:"name"`
			URL     string `json:"url"`
			Snippet string `json:"snippet"`
		} `json:"value"`
	} `json:"webPages"`
}
