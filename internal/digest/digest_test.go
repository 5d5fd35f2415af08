package digest

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hyperifyio/jobdigest/internal/posting"
)

var stampTime = time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)

func makePostings(n int, titleLen int) []posting.Posting {
	out := make([]posting.Posting, n)
	for i := range out {
		title := fmt.Sprintf("Job %d ", i+1) + strings.Repeat("x", titleLen)
		out[i] = posting.Posting{Title: title, URL: fmt.Sprintf("https://jobs.example.com/%d", i+1)}
	}
	return out
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil, stampTime, DefaultOptions())
	if !strings.Contains(out, "No new jobs found today.") {
		t.Fatalf("missing no-results phrase:\n%s", out)
	}
	if !strings.Contains(out, "2025-03-14 09:26 UTC") {
		t.Fatalf("missing timestamp:\n%s", out)
	}
	if utf8.RuneCountInString(out) > DefaultMaxLength {
		t.Fatalf("empty digest too long")
	}
}

func TestRender_Header(t *testing.T) {
	out := Render(makePostings(1, 0), stampTime, DefaultOptions())
	want := "📰 Daily Developer Jobs (2025-03-14 09:26 UTC)\n\n1. Job 1 \nhttps://jobs.example.com/1\n\n"
	if out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestRender_CapsDisplayed(t *testing.T) {
	out := Render(makePostings(20, 3), stampTime, Options{MaxDisplayed: 15, MaxLength: 100000})
	for i := 1; i <= 15; i++ {
		entry := fmt.Sprintf("%d. Job %d xxx\nhttps://jobs.example.com/%d\n", i, i, i)
		if !strings.Contains(out, entry) {
			t.Fatalf("missing entry %d:\n%s", i, out)
		}
	}
	for i := 16; i <= 20; i++ {
		if strings.Contains(out, fmt.Sprintf("https://jobs.example.com/%d\n", i)) {
			t.Fatalf("entry %d should be omitted", i)
		}
	}
	// Input order is kept.
	if strings.Index(out, "/1\n") > strings.Index(out, "/2\n") {
		t.Fatalf("entries out of order")
	}
}

func TestRender_TruncatesToMaxLength(t *testing.T) {
	postings := makePostings(50, 300)
	full := Render(postings, stampTime, Options{MaxDisplayed: 50})
	if utf8.RuneCountInString(full) <= 4000 {
		t.Fatalf("fixture should exceed the cap before truncation")
	}
	out := Render(postings, stampTime, Options{MaxDisplayed: 50, MaxLength: 4000})
	if n := utf8.RuneCountInString(out); n != 4000 {
		t.Fatalf("length=%d, want 4000", n)
	}
	if !strings.HasPrefix(full, out) {
		t.Fatalf("truncation must be a hard prefix cut")
	}
}

func TestTruncate_Runes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"hello", 0, "hello"},
		{"📰 news", 1, "📰"},
		{"héllo", 2, "hé"},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.max); got != c.want {
			t.Fatalf("Truncate(%q,%d)=%q, want %q", c.in, c.max, got, c.want)
		}
	}
}

// The length limit counts code points, so astral runes count once each even
// though Telegram bills them as two UTF-16 units.
func TestTruncate_CountsAstralRunesOnce(t *testing.T) {
	in := strings.Repeat("📰", 10)
	got := Truncate(in, 4)
	if utf8.RuneCountInString(got) != 4 || got != strings.Repeat("📰", 4) {
		t.Fatalf("got %q", got)
	}
}
