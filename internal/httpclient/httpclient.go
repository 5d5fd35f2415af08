package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the per-request deadline applied to every outbound call.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent identifies jobdigest to search providers.
const DefaultUserAgent = "jobdigest/1.0 (+https://github.com/hyperifyio/jobdigest)"

// Response is the subset of an HTTP response the search backends read.
// *resty.Response satisfies it.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client issues GET requests with query parameters and headers.
type Client interface {
	Get(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error)
}

// RestyClient implements Client on top of go-resty.
type RestyClient struct {
	rc *resty.Client
}

// New returns a resty-backed client whose every request is bounded by timeout.
// A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *RestyClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc := resty.NewWithClient(NewHTTPClient(timeout)).
		SetTimeout(timeout).
		SetHeader("User-Agent", DefaultUserAgent).
		SetHeader("Accept", "application/json")
	return &RestyClient{rc: rc}
}

// Get performs a single GET. Non-2xx statuses are not errors here; callers
// inspect StatusCode.
func (c *RestyClient) Get(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// NewHTTPClient returns an *http.Client with its own transport and an overall
// timeout. The pool is small since requests are issued one at a time.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          8,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
