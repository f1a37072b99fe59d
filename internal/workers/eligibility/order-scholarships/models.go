// internal/workers/eligibility/order-scholarships/models.go
package orderscholarships

import "scholarship-workers/internal/models"

type Input struct {
	State  string `json:"state,omitempty"`
	UserID string `json:"userId,omitempty"`
}

type Output struct {
	State        string                         `json:"state"`
	Portals      []models.Portal                `json:"portals"`
	Scholarships []models.IndividualScholarship `json:"scholarships"`
	PriorityList string                         `json:"priorityList"`
}
