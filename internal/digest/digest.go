package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/jobdigest/internal/posting"
)

const (
	// DefaultMaxDisplayed is how many postings a digest lists.
	DefaultMaxDisplayed = 15
	// DefaultMaxLength is counted in code points. Telegram's 4096 limit counts
	// UTF-16 units, so the headroom holds only while the text is mostly BMP;
	// each emoji or other astral rune costs two units there.
	DefaultMaxLength = 4000
	// TimeLayout renders the generation stamp.
	TimeLayout = "2006-01-02 15:04 MST"
)

// Options bounds the rendered digest.
type Options struct {
	MaxDisplayed int
	// MaxLength is in characters (code points). Zero or less disables the cut.
	MaxLength int
}

// DefaultOptions returns the limits used for Telegram delivery.
func DefaultOptions() Options {
	return Options{MaxDisplayed: DefaultMaxDisplayed, MaxLength: DefaultMaxLength}
}

// Render builds the digest message for postings stamped with generatedAt.
// The caller chooses the time zone by converting generatedAt beforehand.
func Render(postings []posting.Posting, generatedAt time.Time, opt Options) string {
	stamp := generatedAt.Format(TimeLayout)
	if len(postings) == 0 {
		return Truncate(fmt.Sprintf("📰 %s\nNo new jobs found today.", stamp), opt.MaxLength)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 Daily Developer Jobs (%s)\n\n", stamp)
	for i, p := range postings {
		if i >= opt.MaxDisplayed {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n%s\n\n", i+1, p.Title, p.URL)
	}
	return Truncate(b.String(), opt.MaxLength)
}

// Truncate cuts s to at most max characters without splitting a UTF-8
// sequence. A non-positive max returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
