// internal/scholarship/links_test.go
package scholarship

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{"bihar keyword", "bihar scholarship link", BiharURL, true},
		{"bih abbreviation", "BIH portal", BiharURL, true},
		{"up as a word", "up scholarship apply link", UttarPradeshURL, true},
		{"uttar pradesh phrase", "Uttar Pradesh ka link do", UttarPradeshURL, true},
		{"tn as a word", "tn portal please", TamilNaduURL, true},
		{"maha prefix", "maha scholarship", MaharashtraURL, true},
		{"portal name word", "aicte internship", "https://aicte-india.org", true},
		{"individual scholarship name", "tata trusts", "https://www.tatatrusts.org", true},
		{"student loan", "student loan kaise milega", NSPURL, true},
		{"credit with apply", "how to apply for credit", NSPURL, true},
		// whole-token match for "up"/"tn" is intended; plain substring matching would hit these
		{"up inside another word", "i need support", "", false},
		{"tn inside another word", "outnumber them", "", false},
		{"unrelated", "what's the weather today", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveLink(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
