// internal/workers/chat/chatbot-reply/handler_test.go
package chatbotreply

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scholarship-workers/internal/chat"
	commonerrors "scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeProfiles map[string]*models.StudentProfile

func (f fakeProfiles) Get(_ context.Context, uid string) (*models.StudentProfile, error) {
	p, ok := f[uid]
	if !ok {
		return nil, errors.New("PROFILE_NOT_FOUND")
	}
	return p, nil
}

func newTestHandler(t *testing.T, completer chat.Completer) *Handler {
	log := logger.NewTestLogger(t)
	profiles := fakeProfiles{"u-kerala": {UID: "u-kerala", State: "Kerala"}}
	assistant := chat.NewAssistant(completer, profiles, log)
	return NewHandler(&Config{Timeout: time.Second, MaxMessage: 200}, assistant, log)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name       string
		input      *Input
		completer  *fakeCompleter
		wantSource string
		wantLink   bool
		wantPrefix string
		wantCalls  int
	}{
		{
			name:       "portal link",
			input:      &Input{Message: "maharashtra scholarship link"},
			completer:  &fakeCompleter{},
			wantSource: chat.SourceLink,
			wantLink:   true,
			wantPrefix: "https://",
		},
		{
			name:       "priority list uses stored state",
			input:      &Input{Message: "  show me scholarships  ", UserID: "u-kerala"},
			completer:  &fakeCompleter{},
			wantSource: chat.SourceCatalog,
			wantPrefix: "Based on your profile (State: Kerala)",
		},
		{
			name:       "open question",
			input:      &Input{Message: "how long does verification take?"},
			completer:  &fakeCompleter{reply: "Usually two to four weeks."},
			wantSource: chat.SourceGenAI,
			wantPrefix: "Usually two to four weeks.",
			wantCalls:  1,
		},
		{
			name:       "generative failure degrades",
			input:      &Input{Message: "how long does verification take?"},
			completer:  &fakeCompleter{err: chat.ErrRateLimited},
			wantSource: chat.SourceFallback,
			wantPrefix: chat.MessageRateLimit,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.completer)

			output, err := h.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, output.Source)
			assert.True(t, strings.HasPrefix(output.Reply, tt.wantPrefix), output.Reply)
			assert.Equal(t, tt.wantLink, output.Link != "")
			assert.Equal(t, tt.wantCalls, tt.completer.calls)
		})
	}
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{name: "empty", message: ""},
		{name: "whitespace", message: "   \n\t"},
		{name: "too long", message: strings.Repeat("a", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{}
			h := newTestHandler(t, completer)

			_, err := h.Execute(context.Background(), &Input{Message: tt.message})

			require.Error(t, err)
			assert.Equal(t, commonerrors.ErrCodeInvalidInput, commonerrors.Normalize(err).Code)
			assert.Zero(t, completer.calls)
		})
	}
}
