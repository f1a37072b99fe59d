// internal/scholarship/evaluate.go
package scholarship

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"scholarship-workers/internal/models"
)

const (
	ReasonProfileIncomplete = "Complete your profile to check eligibility"
	ReasonAllCriteriaMet    = "You meet all eligibility criteria!"
	ReasonPartialMatch      = "Eligible (some profile information may be incomplete)"
	ReasonNoRules           = "Check portal for specific eligibility criteria"

	noteProfileIncomplete = "Profile incomplete"
	noteNoAcademics       = "Academic records not found"
	noteNoIncome          = "Family income not specified"
)

// Evaluate checks a profile against a predicate. Hard failures are reported in
// a fixed order (marks, income, category, state, gender, level) and the first
// one wins. Missing marks or income only add soft notes.
func Evaluate(profile *models.StudentProfile, p models.EligibilityPredicate) models.EligibilityResult {
	if profile == nil {
		return models.EligibilityResult{
			IsEligible:      false,
			Reason:          ReasonProfileIncomplete,
			MissingCriteria: []string{noteProfileIncomplete},
		}
	}

	var notes []string

	if p.MinPercentage != nil {
		minPct := *p.MinPercentage
		best, ok := BestPercentage(profile.AcademicRecords)
		switch {
		case !ok:
			notes = append(notes, noteNoAcademics)
		case best < minPct:
			return ineligible(
				fmt.Sprintf("Minimum %s%% required. Your best: %.1f%%", formatNumber(minPct), best),
				fmt.Sprintf("Need %s%% marks (current: %.1f%%)", formatNumber(minPct), best),
			)
		}
	}

	if p.MaxIncome != nil {
		maxIncome := *p.MaxIncome
		income, ok := ParseIncome(profile.FamilyIncome())
		switch {
		case !ok:
			notes = append(notes, noteNoIncome)
		case income > maxIncome:
			return ineligible(
				fmt.Sprintf("Maximum family income ₹%.1fL required. Your income: ₹%.1fL", maxIncome/100000, income/100000),
				fmt.Sprintf("Family income should be ≤ ₹%.1fL", maxIncome/100000),
			)
		}
	}

	if len(p.RequiredCategories) > 0 {
		cat := profile.Category()
		if cat == "" || !slices.Contains(p.RequiredCategories, cat) {
			cats := strings.ToUpper(joinCategories(p.RequiredCategories))
			return ineligible(
				fmt.Sprintf("This scholarship is for %s category students", cats),
				fmt.Sprintf("Category: %s required", cats),
			)
		}
	}

	if len(p.RequiredStates) > 0 {
		if profile.State == "" || !slices.Contains(p.RequiredStates, profile.State) {
			states := strings.Join(p.RequiredStates, ", ")
			return ineligible(
				fmt.Sprintf("This scholarship is for %s residents only", states),
				fmt.Sprintf("State: %s required", states),
			)
		}
	}

	if len(p.RequiredGenders) > 0 {
		g := profile.Gender
		if g == "" || g == models.GenderPreferNotToSay || !slices.Contains(p.RequiredGenders, g) {
			genders := joinGenders(p.RequiredGenders)
			return ineligible(
				fmt.Sprintf("This scholarship is for %s students only", genders),
				fmt.Sprintf("Gender: %s required", genders),
			)
		}
	}

	if p.MinLevel != "" && !hasLevel(profile.AcademicRecords, p.MinLevel) {
		return ineligible(
			fmt.Sprintf("Minimum %s level required", p.MinLevel),
			fmt.Sprintf("Need %s qualification", p.MinLevel),
		)
	}

	if len(notes) > 0 {
		return models.EligibilityResult{IsEligible: true, Reason: ReasonPartialMatch, MissingCriteria: notes}
	}
	return models.EligibilityResult{IsEligible: true, Reason: ReasonAllCriteriaMet}
}

// EvaluateByID evaluates against the rule registered for id. Scholarships
// without rules are eligible and point the student at the portal.
func EvaluateByID(profile *models.StudentProfile, id string) models.EligibilityResult {
	p, ok := PredicateFor(id)
	if !ok {
		return models.EligibilityResult{IsEligible: true, Reason: ReasonNoRules}
	}
	return Evaluate(profile, p)
}

func ineligible(reason, missing string) models.EligibilityResult {
	return models.EligibilityResult{IsEligible: false, Reason: reason, MissingCriteria: []string{missing}}
}

// hasLevel reports whether any record reaches level. Unknown record levels rank
// below every known level.
func hasLevel(records []models.AcademicRecord, level models.AcademicLevel) bool {
	want := level.Rank()
	for _, r := range records {
		if r.Level.Rank() >= want {
			return true
		}
	}
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinCategories(list []models.Category) string {
	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func joinGenders(list []models.Gender) string {
	parts := make([]string, len(list))
	for i, g := range list {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
