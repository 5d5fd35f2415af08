package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestNewHTTPClient_Config(t *testing.T) {
	c := NewHTTPClient(0)
	if c.Timeout != DefaultTimeout {
		t.Fatalf("timeout=%v, want %v", c.Timeout, DefaultTimeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected http.Transport")
	}
	if reflect.ValueOf(http.DefaultTransport).Pointer() == reflect.ValueOf(tr).Pointer() {
		t.Fatalf("transport should not be default")
	}
}

func TestRestyClient_Get_SendsQueryAndHeaders(t *testing.T) {
	var gotQ, gotKey, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotKey = r.Header.Get("X-Key")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	c := New(2 * time.Second)
	resp, err := c.Get(context.Background(), srv.URL, map[string]string{"q": "go jobs"}, map[string]string{"X-Key": "k"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("status=%d, want 418", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("body=%q", resp.Body())
	}
	if gotQ != "go jobs" || gotKey != "k" {
		t.Fatalf("request not forwarded: q=%q key=%q", gotQ, gotKey)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("user agent=%q", gotUA)
	}
}

func TestRestyClient_Get_DeadlineExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(50 * time.Millisecond)
	if _, err := c.Get(context.Background(), srv.URL, nil, nil); err == nil {
		t.Fatalf("expected timeout error")
	}
}
