package posting

import "strings"

// Posting is one discovered job listing. Two postings are the same listing
// when their URLs are byte-for-byte equal.
type Posting struct {
	Title string
	URL   string
}

// IsPriority reports whether the posting URL contains any of the given domain
// substrings. Empty entries never match.
func (p Posting) IsPriority(domains []string) bool {
	for _, d := range domains {
		if d == "" {
			continue
		}
		if strings.Contains(p.URL, d) {
			return true
		}
	}
	return false
}
