// internal/httpapi/deps.go
package httpapi

import (
	"context"

	"scholarship-workers/internal/chat"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/notify"
	"scholarship-workers/internal/profile"
	"scholarship-workers/internal/search"
)

type ChatReplier interface {
	Reply(ctx context.Context, message, userID string) chat.Reply
}

type WelcomeSender interface {
	Send(ctx context.Context, to notify.Recipient) (*notify.Result, error)
}

type Searcher interface {
	Search(ctx context.Context, q search.Query) (*search.Result, error)
}

// Deps are the services behind the API. Search may be nil when no
// Elasticsearch endpoint is configured.
type Deps struct {
	Chat     ChatReplier
	Welcome  WelcomeSender
	Profiles profile.Loader
	Search   Searcher
	Logger   logger.Logger

	ChatRatePerSec float64
	ChatBurst      int
}
