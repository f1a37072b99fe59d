// internal/notify/welcome_test.go
package notify

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	commonaws "scholarship-workers/internal/common/aws"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	input *ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

type mockSNS struct {
	input *sns.PublishInput
	err   error
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func newSender(t *testing.T, s *mockSES, n *mockSNS) *WelcomeSender {
	var smsSender SMSSender
	if n != nil {
		smsSender = commonaws.NewSNSClientWithAPI(n, "SCHOLAR")
	}
	w := NewWelcomeSender(
		Config{FromEmail: "noreply@tracker.in", AppURL: "https://tracker.in/"},
		commonaws.NewSESClientWithAPI(s),
		smsSender,
		logger.NewTestLogger(t),
	)
	w.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	return w
}

func TestWelcomeSender_Send(t *testing.T) {
	s := &mockSES{}
	w := newSender(t, s, nil)

	res, err := w.Send(context.Background(), Recipient{Email: "asha@example.in", Name: "Asha"})

	require.NoError(t, err)
	assert.Equal(t, "ses-123", res.MessageID)
	assert.True(t, res.EmailSent)
	assert.False(t, res.SMSSent)

	require.NotNil(t, s.input)
	assert.Equal(t, "Scholarship Tracker <noreply@tracker.in>", aws.ToString(s.input.Source))
	assert.Equal(t, WelcomeSubject, aws.ToString(s.input.Message.Subject.Data))
	text := aws.ToString(s.input.Message.Body.Text.Data)
	assert.Contains(t, text, "Welcome, Asha!")
	assert.Contains(t, text, "Go to Apply Scholarships: https://tracker.in/dashboard")
	assert.Contains(t, text, "© 2026 Scholarship Tracker")
	assert.Contains(t, aws.ToString(s.input.Message.Body.Html.Data), `href="https://tracker.in/dashboard"`)
}

func TestWelcomeSender_DefaultNameAndEscaping(t *testing.T) {
	s := &mockSES{}
	w := newSender(t, s, nil)

	_, err := w.Send(context.Background(), Recipient{Email: "a@example.in"})
	require.NoError(t, err)
	assert.Contains(t, aws.ToString(s.input.Message.Body.Text.Data), "Welcome, Student!")

	_, err = w.Send(context.Background(), Recipient{Email: "a@example.in", Name: "<b>Eve</b>"})
	require.NoError(t, err)
	assert.Contains(t, aws.ToString(s.input.Message.Body.Html.Data), "&lt;b&gt;Eve&lt;/b&gt;")
}

func TestWelcomeSender_SMS(t *testing.T) {
	n := &mockSNS{}
	w := newSender(t, &mockSES{}, n)

	res, err := w.Send(context.Background(), Recipient{Email: "a@example.in", PhoneNumber: "9876543210"})

	require.NoError(t, err)
	assert.True(t, res.SMSSent)
	assert.Equal(t, "+919876543210", aws.ToString(n.input.PhoneNumber))

	n.err = stderrors.New("throttled")
	res, err = w.Send(context.Background(), Recipient{Email: "a@example.in", PhoneNumber: "9876543210"})
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	assert.False(t, res.SMSSent)
}

func TestWelcomeSender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		to       Recipient
		sesErr   error
		wantCode errors.ErrorCode
	}{
		{"missing email", Recipient{}, nil, errors.ErrCodeInvalidInput},
		{"bad email", Recipient{Email: "not-an-email"}, nil, errors.ErrCodeInvalidInput},
		{"ses failure", Recipient{Email: "a@example.in"}, stderrors.New("MessageRejected"), errors.ErrCodeNotificationSendFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newSender(t, &mockSES{err: tt.sesErr}, nil)
			_, err := w.Send(context.Background(), tt.to)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
		})
	}
}
