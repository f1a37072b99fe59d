// internal/models/scholarship.go
package models

// Jurisdiction classifies who runs a scholarship and drives ordering tie-breaks.
type Jurisdiction string

const (
	JurisdictionCentral Jurisdiction = "Central"
	JurisdictionState   Jurisdiction = "State"
	JurisdictionPrivate Jurisdiction = "Private"
)

// AllStates is the applicable-states sentinel for portals open to every state.
const AllStates = "ALL"

// Rank returns the recommendation tie-break weight: State > Central > Private.
func (j Jurisdiction) Rank() int {
	switch j {
	case JurisdictionState:
		return 3
	case JurisdictionCentral:
		return 2
	case JurisdictionPrivate:
		return 1
	default:
		return 0
	}
}

type Portal struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Jurisdiction     Jurisdiction `json:"type"`
	CoveredSchemes   string       `json:"coveredSchemes"`
	Description      string       `json:"description"`
	PortalURL        string       `json:"portalUrl"`
	ApplicableStates []string     `json:"applicableStates,omitempty"`
	Eligibility      string       `json:"eligibility"`
}

// ServesState reports whether the portal lists the state or the ALL sentinel.
func (p Portal) ServesState(state string) bool {
	for _, s := range p.ApplicableStates {
		if s == state || s == AllStates {
			return true
		}
	}
	return false
}

type IndividualScholarship struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Jurisdiction Jurisdiction `json:"type"`
	Description  string       `json:"description"`
	PortalURL    string       `json:"portalUrl"`
	State        string       `json:"state,omitempty"`
	Category     string       `json:"category"`
}

// EntryKind discriminates the two catalog entry variants.
type EntryKind string

const (
	EntryKindPortal     EntryKind = "portal"
	EntryKindIndividual EntryKind = "individual"
)

// CatalogEntry is either a portal or an individual scholarship. Exactly one of
// Portal and Scholarship is set, matching Kind.
type CatalogEntry struct {
	Kind        EntryKind              `json:"kind"`
	Portal      *Portal                `json:"portal,omitempty"`
	Scholarship *IndividualScholarship `json:"scholarship,omitempty"`
}

func PortalEntry(p Portal) CatalogEntry {
	return CatalogEntry{Kind: EntryKindPortal, Portal: &p}
}

func ScholarshipEntry(s IndividualScholarship) CatalogEntry {
	return CatalogEntry{Kind: EntryKindIndividual, Scholarship: &s}
}

func (e CatalogEntry) ID() string {
	if e.Kind == EntryKindPortal {
		return e.Portal.ID
	}
	return e.Scholarship.ID
}

func (e CatalogEntry) Name() string {
	if e.Kind == EntryKindPortal {
		return e.Portal.Name
	}
	return e.Scholarship.Name
}

func (e CatalogEntry) Description() string {
	if e.Kind == EntryKindPortal {
		return e.Portal.Description
	}
	return e.Scholarship.Description
}

func (e CatalogEntry) URL() string {
	if e.Kind == EntryKindPortal {
		return e.Portal.PortalURL
	}
	return e.Scholarship.PortalURL
}

func (e CatalogEntry) Jurisdiction() Jurisdiction {
	if e.Kind == EntryKindPortal {
		return e.Portal.Jurisdiction
	}
	return e.Scholarship.Jurisdiction
}

// States returns the portal's applicable states, or the single state of an
// individual scholarship (empty when unaffiliated).
func (e CatalogEntry) States() []string {
	if e.Kind == EntryKindPortal {
		return e.Portal.ApplicableStates
	}
	if e.Scholarship.State == "" {
		return nil
	}
	return []string{e.Scholarship.State}
}

// AcademicLevel is an ordered qualification level.
type AcademicLevel string

const (
	Level10th           AcademicLevel = "10th"
	Level12th           AcademicLevel = "12th"
	LevelGraduation     AcademicLevel = "graduation"
	LevelPostGraduation AcademicLevel = "post-graduation"
)

// Rank orders levels 10th=0 .. post-graduation=3; unknown levels rank -1.
func (l AcademicLevel) Rank() int {
	switch l {
	case Level10th:
		return 0
	case Level12th:
		return 1
	case LevelGraduation:
		return 2
	case LevelPostGraduation:
		return 3
	default:
		return -1
	}
}

// EligibilityPredicate is the rule set for one scholarship id. Nil/empty fields
// are unrestricted.
type EligibilityPredicate struct {
	MinPercentage      *float64      `json:"minPercentage,omitempty"`
	MaxIncome          *float64      `json:"maxIncome,omitempty"`
	RequiredCategories []Category    `json:"requiredCategories,omitempty"`
	RequiredStates     []string      `json:"requiredStates,omitempty"`
	RequiredGenders    []Gender      `json:"requiredGender,omitempty"`
	MinLevel           AcademicLevel `json:"minClassLevel,omitempty"`
}

type EligibilityResult struct {
	IsEligible      bool     `json:"isEligible"`
	Reason          string   `json:"reason"`
	MissingCriteria []string `json:"missingCriteria,omitempty"`
}

type EligibleScholarship struct {
	IndividualScholarship
	EligibilityResult EligibilityResult `json:"eligibilityResult"`
	MatchScore        int               `json:"matchScore"`
}
