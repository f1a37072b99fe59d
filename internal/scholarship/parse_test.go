// internal/scholarship/parse_test.go
package scholarship

import (
	"testing"

	"scholarship-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"cgpa without marker", "8.5", 85, true},
		{"percent sign", "85%", 85, true},
		{"plain percentage", "85", 85, true},
		{"explicit cgpa", "8.5 CGPA", 85, true},
		{"cgpa suffix no space", "9.2cgpa", 92, true},
		{"percent word keeps value", "9 percent", 9, true},
		{"padded", "  72.4 % ", 72.4, true},
		{"ten is cgpa", "10", 100, true},
		{"letters", "abc", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePercentage(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestParseIncome(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"indian grouping with rupee", "₹2,50,000", 250000, true},
		{"plain", "250000", 250000, true},
		{"lakh word", "2.5 Lakh", 250000, true},
		{"l suffix", "2.5L", 250000, true},
		{"lakhs plural", "3 lakhs", 300000, true},
		{"spaces inside", "₹ 1 20 000", 120000, true},
		{"unparseable", "not sure", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIncome(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestBestPercentage(t *testing.T) {
	records := []models.AcademicRecord{
		{Level: models.Level10th, PercentageOrCGPA: "78%"},
		{Level: models.Level12th, PercentageOrCGPA: "8.9 CGPA"},
		{Level: models.LevelGraduation, PercentageOrCGPA: "pending"},
	}

	best, ok := BestPercentage(records)
	assert.True(t, ok)
	assert.InDelta(t, 89.0, best, 0.0001)

	_, ok = BestPercentage(nil)
	assert.False(t, ok)

	_, ok = BestPercentage([]models.AcademicRecord{{PercentageOrCGPA: "n/a"}})
	assert.False(t, ok)
}
