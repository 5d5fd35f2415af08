package aggregate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/hyperifyio/jobdigest/internal/posting"
	"github.com/hyperifyio/jobdigest/internal/search"
)

// stubProvider answers queries by the phrase they start with.
type stubProvider struct {
	byPhrase map[string][]search.Result
	fail     map[string]error
	panics   map[string]bool
	queries  []string
	limits   []int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	s.limits = append(s.limits, limit)
	phrase := strings.SplitN(query, " site:", 2)[0]
	if s.panics[phrase] {
		panic("provider blew up")
	}
	if err := s.fail[phrase]; err != nil {
		return nil, err
	}
	return s.byPhrase[phrase], nil
}

func urls(ps []posting.Posting) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.URL
	}
	return out
}

func TestCollect_EndToEndExample(t *testing.T) {
	sp := &stubProvider{byPhrase: map[string][]search.Result{
		"A": {{Title: "X", URL: "http://p.com/1"}, {Title: "Y", URL: "http://q.com/2"}},
		"B": {{Title: "Y2", URL: "http://q.com/2"}, {Title: "Z", URL: "http://priority.com/3"}},
	}}
	c := &Collector{Provider: sp}
	got := c.Collect(context.Background(), []string{"A", "B"}, []string{"priority.com"}, 10)

	want := []posting.Posting{
		{Title: "Z", URL: "http://priority.com/3"},
		{Title: "X", URL: "http://p.com/1"},
		{Title: "Y", URL: "http://q.com/2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if len(sp.queries) != 2 {
		t.Fatalf("expected one query per phrase, got %d", len(sp.queries))
	}
	for _, l := range sp.limits {
		if l != 10 {
			t.Fatalf("result cap not forwarded: %v", sp.limits)
		}
	}
}

func TestCollect_FailingPhraseDoesNotAbortOthers(t *testing.T) {
	sp := &stubProvider{
		byPhrase: map[string][]search.Result{
			"ok1": {{Title: "one", URL: "https://a.example/1"}},
			"ok2": {{Title: "two", URL: "https://b.example/2"}},
		},
		fail:   map[string]error{"bad": errors.New("status 500")},
		panics: map[string]bool{"boom": true},
	}
	c := &Collector{Provider: sp}
	got := c.Collect(context.Background(), []string{"ok1", "bad", "boom", "ok2"}, nil, 5)
	if want := []string{"https://a.example/1", "https://b.example/2"}; !reflect.DeepEqual(urls(got), want) {
		t.Fatalf("got %v, want %v", urls(got), want)
	}
	if len(sp.queries) != 4 {
		t.Fatalf("expected all 4 phrases queried, got %d", len(sp.queries))
	}
}

func TestCollect_NilProviderYieldsEmpty(t *testing.T) {
	c := &Collector{}
	got := c.Collect(context.Background(), []string{"a", "b"}, []string{"x.com"}, 10)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestCollect_UnconfiguredProviderYieldsEmpty(t *testing.T) {
	c := &Collector{Provider: search.Unconfigured{}}
	if got := c.Collect(context.Background(), []string{"a"}, nil, 10); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestCollect_CancelledContextStopsQuerying(t *testing.T) {
	sp := &stubProvider{byPhrase: map[string][]search.Result{"a": {{Title: "t", URL: "u"}}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Collector{Provider: sp}
	if got := c.Collect(ctx, []string{"a", "b"}, nil, 10); len(got) != 0 {
		t.Fatalf("expected nothing gathered, got %+v", got)
	}
	if len(sp.queries) != 0 {
		t.Fatalf("expected no queries after cancel, got %d", len(sp.queries))
	}
}

func TestCollect_WithLimiter(t *testing.T) {
	sp := &stubProvider{byPhrase: map[string][]search.Result{
		"a": {{Title: "t1", URL: "https://a/1"}},
		"b": {{Title: "t2", URL: "https://b/2"}},
	}}
	c := &Collector{Provider: sp, Limiter: rate.NewLimiter(rate.Inf, 1)}
	if got := c.Collect(context.Background(), []string{"a", "b"}, nil, 10); len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(got))
	}
}

func TestScopedQuery(t *testing.T) {
	got := ScopedQuery(`"software engineer" "hiring"`, nil)
	want := `"software engineer" "hiring" site:careers OR site:jobs OR site:linkedin.com/jobs OR site:wellfound.io`
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	if got := ScopedQuery("x", []string{"example.com", " "}); got != "x site:example.com" {
		t.Fatalf("custom scope: %q", got)
	}
}

func TestMerge_FirstOccurrenceWins(t *testing.T) {
	groups := [][]posting.Posting{
		{{Title: "first", URL: "https://a.com/1"}, {Title: "", URL: ""}},
		{{Title: "second", URL: "https://a.com/1"}, {Title: "other", URL: "https://A.com/1"}},
		{{Title: "query", URL: "https://a.com/1?x=1"}},
	}
	out := Merge(groups)
	if len(out) != 3 {
		t.Fatalf("expected 3 distinct urls (exact match identity), got %d: %+v", len(out), out)
	}
	if out[0].Title != "first" {
		t.Fatalf("expected first title kept, got %q", out[0].Title)
	}
}

func TestPrioritySort_StableWithinGroups(t *testing.T) {
	in := make([]posting.Posting, 0, 10)
	for i := 0; i < 10; i++ {
		host := "other.org"
		if i%3 == 0 {
			host = "github.com"
		}
		in = append(in, posting.Posting{Title: fmt.Sprint(i), URL: fmt.Sprintf("https://%s/%d", host, i)})
	}
	out := PrioritySort(in, []string{"github.com"})

	var titles []string
	for _, p := range out {
		titles = append(titles, p.Title)
	}
	want := []string{"0", "3", "6", "9", "1", "2", "4", "5", "7", "8"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("got %v, want %v", titles, want)
	}
	if in[1].Title != "1" {
		t.Fatalf("input slice must not be reordered")
	}
}

// A bracketed title survives the file backend, so its posting is the first
// occurrence and keeps its title over a later duplicate.
func TestCollect_BracketedTitleIsFirstOccurrence(t *testing.T) {
	p := filepath.Join(t.TempDir(), "results.json")
	fixture := `{
		"\"alpha\"": [{"title":"<Remote>","url":"https://jobs.example/x"}],
		"\"beta\"": [{"title":"Go Developer","url":"https://jobs.example/x"}]
	}`
	if err := os.WriteFile(p, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	c := &Collector{Provider: &search.FileProvider{Path: p}}
	got := c.Collect(context.Background(), []string{`"alpha"`, `"beta"`}, nil, 10)
	want := []posting.Posting{{Title: "<Remote>", URL: "https://jobs.example/x"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
