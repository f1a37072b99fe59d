// internal/scholarship/recommend.go
package scholarship

import (
	"sort"

	"scholarship-workers/internal/models"
)

// Recommend evaluates every individual scholarship and returns the eligible
// ones, best match first. Ties prefer State over Central over Private.
func Recommend(profile *models.StudentProfile) []models.EligibleScholarship {
	if profile == nil {
		return []models.EligibleScholarship{}
	}

	out := make([]models.EligibleScholarship, 0, len(individualScholarships))
	for _, s := range individualScholarships {
		p, ok := PredicateFor(s.ID)
		if !ok {
			out = append(out, models.EligibleScholarship{
				IndividualScholarship: s,
				EligibilityResult:     models.EligibilityResult{IsEligible: true, Reason: ReasonNoRules},
				MatchScore:            1,
			})
			continue
		}

		res := Evaluate(profile, p)
		if !res.IsEligible {
			continue
		}
		out = append(out, models.EligibleScholarship{
			IndividualScholarship: s,
			EligibilityResult:     res,
			MatchScore:            Score(profile, p),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].Jurisdiction.Rank() > out[j].Jurisdiction.Rank()
	})
	return out
}
