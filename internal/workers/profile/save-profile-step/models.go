// internal/workers/profile/save-profile-step/models.go
package saveprofilestep

import (
	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/profile"
)

const (
	ActionNext     = "next"
	ActionPrevious = "previous"
	ActionResume   = "resume"
	ActionReopen   = "reopen"
	ActionClear    = "clear"
)

type Input struct {
	UserID string       `json:"userId"`
	Email  string       `json:"email,omitempty"`
	Step   int          `json:"step"`
	Action string       `json:"action,omitempty"` // defaults to next
	Form   profile.Form `json:"form,omitempty"`
}

type Output struct {
	UserID      string                       `json:"userId"`
	CurrentStep int                          `json:"currentStep"`
	State       string                       `json:"state"`
	Complete    bool                         `json:"complete"`
	Valid       bool                         `json:"valid"`
	Errors      []validation.ValidationError `json:"errors"`
}
