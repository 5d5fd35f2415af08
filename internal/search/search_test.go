package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet([]byte("  \n")); got != "<empty>" {
		t.Fatalf("empty body: got %q", got)
	}
	if got := responseSnippet([]byte(" {\"error\":\"quota\"} ")); got != `{"error":"quota"}` {
		t.Fatalf("short body: got %q", got)
	}

	// 511 ASCII bytes then a 3-byte rune straddling the 512-byte cut.
	body := strings.Repeat("a", 511) + strings.Repeat("€", 10)
	got := responseSnippet([]byte(body))
	if !utf8.ValidString(got) {
		t.Fatalf("snippet split a rune: %q", got[len(got)-8:])
	}
	if got != strings.Repeat("a", 511)+"..." {
		t.Fatalf("unexpected cut: len=%d", len(got))
	}
}
