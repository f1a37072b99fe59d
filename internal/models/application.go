// internal/models/application.go
package models

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusUnderReview ApplicationStatus = "Under Review"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
	StatusWithdrawn   ApplicationStatus = "Withdrawn"
)

// ApplicationStatuses lists every status in display order.
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusUnderReview,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// SavedApplication is a scholarship application the student tracks by hand.
type SavedApplication struct {
	ID            string            `json:"id"`
	PortalName    string            `json:"portalName"`
	ApplicationID string            `json:"applicationId,omitempty"`
	Status        ApplicationStatus `json:"status"`
	AppliedDate   string            `json:"appliedDate"`
	Deadline      string            `json:"deadline,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}
