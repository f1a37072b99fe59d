// internal/workers/eligibility/evaluate-eligibility/models.go
package evaluateeligibility

import "scholarship-workers/internal/models"

// Input carries either an inline profile or a userId to load one. With a
// scholarshipId only that scholarship is evaluated.
type Input struct {
	UserID        string                 `json:"userId,omitempty"`
	Profile       *models.StudentProfile `json:"profile,omitempty"`
	ScholarshipID string                 `json:"scholarshipId,omitempty"`
}

type Output struct {
	Recommendations []models.EligibleScholarship `json:"recommendations"`
	Result          *models.EligibilityResult    `json:"result,omitempty"`
	MatchScore      *int                         `json:"matchScore,omitempty"`
	EligibleCount   int                          `json:"eligibleCount"`
}
