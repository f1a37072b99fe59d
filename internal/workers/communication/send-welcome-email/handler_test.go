// internal/workers/communication/send-welcome-email/handler_test.go
package sendwelcomeemail

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	commonaws "scholarship-workers/internal/common/aws"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/notify"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockSES struct {
	calls int
	to    string
	err   error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	if len(params.Destination.ToAddresses) > 0 {
		m.to = params.Destination.ToAddresses[0]
	}
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-welcome-1")}, nil
}

type mockSNS struct {
	phone string
	err   error
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.phone = aws.ToString(params.PhoneNumber)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func newTestHandler(t *testing.T, s *mockSES, n *mockSNS) *Handler {
	log := logger.NewTestLogger(t)
	sender := notify.NewWelcomeSender(
		notify.Config{FromEmail: "noreply@tracker.in", AppURL: "https://tracker.in"},
		commonaws.NewSESClientWithAPI(s),
		commonaws.NewSNSClientWithAPI(n, "SCHOLAR"),
		log,
	)
	return NewHandler(&Config{Timeout: time.Second}, sender, log)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		snsErr    error
		wantSMS   bool
		wantPhone string
	}{
		{
			name:  "email only",
			input: &Input{Email: "asha@example.in", Name: "Asha"},
		},
		{
			name:      "email and sms",
			input:     &Input{Email: " asha@example.in ", PhoneNumber: "9876543210"},
			wantSMS:   true,
			wantPhone: "+919876543210",
		},
		{
			name:      "sms failure is not fatal",
			input:     &Input{Email: "asha@example.in", PhoneNumber: "+919876543210"},
			snsErr:    stderrors.New("throttled"),
			wantSMS:   false,
			wantPhone: "+919876543210",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockSES{}
			n := &mockSNS{err: tt.snsErr}
			h := newTestHandler(t, s, n)

			output, err := h.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, "ses-welcome-1", output.MessageID)
			assert.True(t, output.EmailSent)
			assert.Equal(t, tt.wantSMS, output.SMSSent)
			assert.Equal(t, "asha@example.in", s.to)
			assert.Equal(t, tt.wantPhone, n.phone)
		})
	}
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "missing email", input: &Input{}},
		{name: "malformed email", input: &Input{Email: "not-an-email"}},
		{name: "malformed phone", input: &Input{Email: "asha@example.in", PhoneNumber: "12ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockSES{}
			h := newTestHandler(t, s, &mockSNS{})

			_, err := h.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.Normalize(err).Code)
			assert.Zero(t, s.calls)
		})
	}
}

func TestHandler_Execute_EmailFailureIsRetryable(t *testing.T) {
	h := newTestHandler(t, &mockSES{err: stderrors.New("ses unavailable")}, &mockSNS{})

	_, err := h.Execute(context.Background(), &Input{Email: "asha@example.in"})

	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, []string{"email"}, schema.Required)
	assert.Contains(t, schema.Properties, "phoneNumber")
}
