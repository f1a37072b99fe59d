// internal/common/aws/clients_test.go
package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

// ==========================
// Tests
// ==========================

func TestSESClient_SendEmail(t *testing.T) {
	var captured *ses.SendEmailInput
	client := NewSESClientWithAPI(&MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
		},
	})

	id, err := client.SendEmail(context.Background(), Email{
		From:     "noreply@scholarships.test",
		To:       "student@example.com",
		Subject:  "Hello",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	require.NotNil(t, captured)
	assert.Equal(t, []string{"student@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "noreply@scholarships.test", aws.ToString(captured.Source))
	assert.Equal(t, "plain", aws.ToString(captured.Message.Body.Text.Data))
	assert.Equal(t, "<p>html</p>", aws.ToString(captured.Message.Body.Html.Data))
}

func TestSESClient_TextOnly(t *testing.T) {
	client := NewSESClientWithAPI(&MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Nil(t, params.Message.Body.Html)
			return &ses.SendEmailOutput{MessageId: aws.String("msg-2")}, nil
		},
	})

	_, err := client.SendEmail(context.Background(), Email{To: "a@b.in", TextBody: "plain"})
	assert.NoError(t, err)
}

func TestSESClient_Error(t *testing.T) {
	client := NewSESClientWithAPI(&MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	})

	_, err := client.SendEmail(context.Background(), Email{To: "a@b.in"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSNSClient_SendSMS(t *testing.T) {
	client := NewSNSClientWithAPI(&MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			assert.Equal(t, "+919876543210", aws.ToString(params.PhoneNumber))
			assert.Equal(t, "SCHLRS", aws.ToString(params.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
			return &sns.PublishOutput{MessageId: aws.String("sms-1")}, nil
		},
	}, "SCHLRS")

	id, err := client.SendSMS(context.Background(), "+919876543210", "welcome")

	require.NoError(t, err)
	assert.Equal(t, "sms-1", id)
}
