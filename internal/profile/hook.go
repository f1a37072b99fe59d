// internal/profile/hook.go
package profile

import (
	"context"

	"scholarship-workers/internal/models"
)

// MessageProfileCompleted is published once per completed profile,
// correlated by uid.
const MessageProfileCompleted = "profile-completed"

// CompletionHook runs after a profile reaches Complete.
type CompletionHook func(ctx context.Context, p *models.StudentProfile) error

// MessagePublisher is satisfied by camunda.Client.
type MessagePublisher interface {
	Publish(ctx context.Context, name, correlationKey string, variables map[string]interface{}) error
}

// PublishCompletion returns a hook that publishes MessageProfileCompleted.
func PublishCompletion(pub MessagePublisher) CompletionHook {
	return func(ctx context.Context, p *models.StudentProfile) error {
		return pub.Publish(ctx, MessageProfileCompleted, p.UID, map[string]interface{}{
			"userId":   p.UID,
			"email":    p.Email,
			"fullName": p.FullName,
			"state":    p.State,
		})
	}
}
