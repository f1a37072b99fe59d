// internal/workers/tracker/track-application/models.go
package trackapplication

import (
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/tracker"
)

const (
	ActionAdd          = "add"
	ActionUpdate       = "update"
	ActionUpdateStatus = "update-status"
	ActionRemove       = "remove"
	ActionList         = "list"
)

type Input struct {
	UserID        string                   `json:"userId"`
	Action        string                   `json:"action"`
	Application   *models.SavedApplication `json:"application,omitempty"`
	ApplicationID string                   `json:"applicationId,omitempty"`
	Status        models.ApplicationStatus `json:"status,omitempty"`
}

type Output struct {
	Application  *models.SavedApplication  `json:"application,omitempty"`
	Applications []models.SavedApplication `json:"applications"`
	Summary      *tracker.Summary          `json:"summary"`
}
