// internal/scholarship/rules.go
package scholarship

import (
	"errors"
	"fmt"

	"scholarship-workers/internal/models"
)

var (
	ErrDuplicateID = errors.New("CATALOG_DUPLICATE_ID")
	ErrUnknownRule = errors.New("RULE_UNKNOWN_SCHOLARSHIP")
)

func pct(v float64) *float64 { return &v }
func inr(v float64) *float64 { return &v }

var reservedCategories = []models.Category{models.CategorySC, models.CategoryST, models.CategoryOBC}

var rules = map[string]models.EligibilityPredicate{
	"post-matric": {
		MinPercentage:      pct(50),
		MaxIncome:          inr(250000),
		RequiredCategories: reservedCategories,
	},
	"pre-matric": {
		MinPercentage:      pct(50),
		MaxIncome:          inr(250000),
		RequiredCategories: []models.Category{models.CategorySC, models.CategoryST},
		MinLevel:           models.Level10th,
	},
	"merit-means":    {MinPercentage: pct(50), MaxIncome: inr(250000)},
	"minority-merit": {MinPercentage: pct(50), MaxIncome: inr(250000)},
	"ugc-csir":       {MinPercentage: pct(55), MinLevel: models.LevelGraduation},
	"inspire":        {MinPercentage: pct(65), MinLevel: models.Level12th},

	"cm-bicycle-bihar": {
		RequiredStates:  []string{"Bihar"},
		RequiredGenders: []models.Gender{models.GenderFemale},
		MinLevel:        models.Level10th,
	},
	"mukhyamantri-bihar": {
		RequiredStates:  []string{"Bihar"},
		RequiredGenders: []models.Gender{models.GenderFemale},
	},
	"up-post-matric":          {RequiredStates: []string{"Uttar Pradesh"}, MinPercentage: pct(50)},
	"tn-merit":                {RequiredStates: []string{"Tamil Nadu"}, MinPercentage: pct(60)},
	"maha-mukhyamantri":       {RequiredStates: []string{"Maharashtra"}, MinPercentage: pct(50)},
	"rajasthan-scholarship":   {RequiredStates: []string{"Rajasthan"}, MinPercentage: pct(50)},
	"kerala-scholarship":      {RequiredStates: []string{"Kerala"}, MinPercentage: pct(50)},
	"west-bengal-scholarship": {RequiredStates: []string{"West Bengal"}, MinPercentage: pct(50)},

	"tata-scholarship":      {MinPercentage: pct(60), MaxIncome: inr(500000)},
	"reliance-foundation":   {MinPercentage: pct(60), MaxIncome: inr(600000)},
	"aditya-birla":          {MinPercentage: pct(65), MaxIncome: inr(400000)},
	"infosys-foundation":    {MinPercentage: pct(60), MinLevel: models.LevelGraduation},
	"wipro-foundation":      {MinPercentage: pct(55), MaxIncome: inr(300000)},
	"icici-foundation":      {MinPercentage: pct(55), MaxIncome: inr(400000)},
	"hdfc-bank-scholarship": {MinPercentage: pct(60), MaxIncome: inr(500000)},
	"axis-bank-foundation":  {MinPercentage: pct(55), MaxIncome: inr(300000)},
}

// PredicateFor returns the eligibility rules registered for a scholarship id.
func PredicateFor(id string) (models.EligibilityPredicate, bool) {
	p, ok := rules[id]
	return p, ok
}

// Validate checks catalog id uniqueness and that every rule names a known
// individual scholarship. The worker manager refuses to start on error.
func Validate() error {
	seen := make(map[string]struct{}, len(portals))
	for _, p := range portals {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: portal %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(individualScholarships))
	for _, s := range individualScholarships {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: scholarship %s", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	for id := range rules {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRule, id)
		}
	}
	return nil
}
