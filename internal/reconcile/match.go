package reconcile

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// canonical applies NFC so accented characters compare by code point, then
// collapses whitespace runs (including newlines) to single spaces.
func canonical(s string) string {
	s = norm.NFC.String(s)
	s = reWhitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Contains reports whether needle occurs as a contiguous substring of any
// single page, or of the space-joined concatenation of all pages (a needle
// may span a page break). Matching is case-sensitive and exact; both sides
// are canonicalized first. An empty needle never matches.
func Contains(pages []string, needle string) bool {
	n := canonical(needle)
	if n == "" {
		return false
	}
	var joined strings.Builder
	for i, page := range pages {
		p := canonical(page)
		if strings.Contains(p, n) {
			return true
		}
		if i > 0 {
			joined.WriteByte(' ')
		}
		joined.WriteString(p)
	}
	return strings.Contains(joined.String(), n)
}
