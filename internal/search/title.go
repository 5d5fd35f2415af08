package search

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// inlineMarkup lists the elements providers wrap around highlighted words.
// Anything else in angle brackets, such as "<Remote>", is title text.
var inlineMarkup = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Br: true, atom.Code: true,
	atom.Del: true, atom.Em: true, atom.Font: true, atom.I: true, atom.Ins: true,
	atom.Mark: true, atom.S: true, atom.Small: true, atom.Span: true,
	atom.Strong: true, atom.Sub: true, atom.Sup: true, atom.U: true, atom.Wbr: true,
}

// CleanTitle turns a provider title into plain display text: inline markup is
// dropped, entities are decoded, whitespace runs collapse to one space and the
// result is NFC-normalized.
func CleanTitle(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return collapse(raw)
	}
	z := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapse(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tagRaw := string(z.Raw())
			name, _ := z.TagName()
			if !inlineMarkup[atom.Lookup(name)] {
				b.WriteString(tagRaw)
			}
		}
	}
}

// resultTitle is the title a result is listed under. A record with a URL is
// never dropped for its title: an empty cleaned title falls back to the raw
// text, then to the URL.
func resultTitle(raw, url string) string {
	if t := CleanTitle(raw); t != "" {
		return t
	}
	if t := collapse(raw); t != "" {
		return t
	}
	return url
}

func collapse(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
