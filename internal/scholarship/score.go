// internal/scholarship/score.go
package scholarship

import (
	"slices"

	"scholarship-workers/internal/models"
)

// Score ranks how well a profile fits a predicate it already satisfies.
func Score(profile *models.StudentProfile, p models.EligibilityPredicate) int {
	if profile == nil {
		return 1
	}
	score := 1

	if len(p.RequiredStates) > 0 && profile.State != "" && slices.Contains(p.RequiredStates, profile.State) {
		score += 3
	}

	if cat := profile.Category(); len(p.RequiredCategories) > 0 && cat != "" && slices.Contains(p.RequiredCategories, cat) {
		score += 2
	}

	if p.MinPercentage != nil {
		if best, ok := BestPercentage(profile.AcademicRecords); ok && best > *p.MinPercentage+10 {
			score++
		}
	}

	return score
}
