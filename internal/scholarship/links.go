// internal/scholarship/links.go
package scholarship

import (
	"slices"
	"strings"
	"unicode"
)

type stateLink struct {
	phrases []string
	tokens  []string
	url     string
}

// "up" and "tn" are too short to match as substrings ("support", "want").
var stateLinks = []stateLink{
	{phrases: []string{"bihar", "bih"}, url: BiharURL},
	{phrases: []string{"uttar pradesh"}, tokens: []string{"up"}, url: UttarPradeshURL},
	{phrases: []string{"tamil nadu"}, tokens: []string{"tn"}, url: TamilNaduURL},
	{phrases: []string{"maharashtra", "maha"}, url: MaharashtraURL},
}

// ResolveLink maps a free-text request to the most specific application URL.
// It checks state keywords, then portal and scholarship names, then generic
// loan or scholarship phrasing.
func ResolveLink(query string) (string, bool) {
	q := strings.ToLower(query)
	tokens := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, sl := range stateLinks {
		for _, p := range sl.phrases {
			if strings.Contains(q, p) {
				return sl.url, true
			}
		}
		for _, t := range sl.tokens {
			if slices.Contains(tokens, t) {
				return sl.url, true
			}
		}
	}

	for _, p := range portals {
		if nameMatches(p.Name, q) {
			return p.PortalURL, true
		}
	}
	for _, s := range individualScholarships {
		if nameMatches(s.Name, q) {
			return s.PortalURL, true
		}
	}

	hasApply := strings.Contains(q, "apply")
	if strings.Contains(q, "student credit") || strings.Contains(q, "student loan") ||
		(strings.Contains(q, "credit") && hasApply) ||
		(strings.Contains(q, "loan") && hasApply) {
		return NSPURL, true
	}

	if strings.Contains(q, "scholarship") && (strings.Contains(q, "link") || hasApply) {
		return NSPURL, true
	}

	return "", false
}

// nameMatches reports whether any word of name longer than three bytes occurs
// in the lower-cased query.
func nameMatches(name, q string) bool {
	for _, w := range strings.Split(strings.ToLower(name), " ") {
		if len(w) > 3 && strings.Contains(q, w) {
			return true
		}
	}
	return false
}
