// internal/scholarship/parse.go
package scholarship

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"scholarship-workers/internal/models"
)

var (
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	lakhSuffix    = regexp.MustCompile(`lakh|l`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// leadingFloat parses the longest numeric prefix of s, so "8.5cgpa" yields 8.5.
func leadingFloat(s string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParsePercentage reads a free-text mark such as "85%", "85", "8.5 CGPA" or
// "8.5". Values up to 10 without a "percent" marker are treated as CGPA and
// scaled by 10.
func ParsePercentage(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "%", "")
	num, ok := leadingFloat(cleaned)
	if !ok {
		return 0, false
	}

	lower := strings.ToLower(cleaned)
	if num <= 10 && strings.Contains(lower, "cgpa") {
		return num * 10, true
	}
	if num <= 10 && !strings.Contains(lower, "percent") {
		return num * 10, true
	}
	return num, true
}

// BestPercentage returns the highest parseable mark across the records.
func BestPercentage(records []models.AcademicRecord) (float64, bool) {
	var (
		best  float64
		found bool
	)
	for _, r := range records {
		v, ok := ParsePercentage(r.PercentageOrCGPA)
		if !ok {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}

// ParseIncome reads an annual income such as "₹2,50,000", "250000",
// "2.5 Lakh" or "2.5L" into rupees.
func ParseIncome(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "₹", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = whitespace.ReplaceAllString(cleaned, "")
	cleaned = strings.ToLower(cleaned)

	if strings.Contains(cleaned, "lakh") || strings.HasSuffix(cleaned, "l") {
		if num, ok := leadingFloat(lakhSuffix.ReplaceAllString(cleaned, "")); ok {
			return num * 100000, true
		}
	}

	return leadingFloat(cleaned)
}
