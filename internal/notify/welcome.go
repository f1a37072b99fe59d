// internal/notify/welcome.go
package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"scholarship-workers/internal/common/aws"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/validation"
)

const WelcomeSubject = "Welcome to Scholarship Tracker! 🎓"

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, msg aws.Email) (string, error)
}

// SMSSender is satisfied by aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Config struct {
	FromEmail string
	FromName  string
	AppURL    string
}

type Recipient struct {
	Email       string
	Name        string
	PhoneNumber string
}

type Result struct {
	MessageID string `json:"messageId"`
	EmailSent bool   `json:"emailSent"`
	SMSSent   bool   `json:"smsSent"`
}

// WelcomeSender sends the post sign-up welcome message. SMS is optional and
// best-effort.
type WelcomeSender struct {
	cfg    Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
	now    func() time.Time
}

func NewWelcomeSender(cfg Config, email EmailSender, sms SMSSender, log logger.Logger) *WelcomeSender {
	if cfg.FromName == "" {
		cfg.FromName = "Scholarship Tracker"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:3000"
	}
	return &WelcomeSender{
		cfg:    cfg,
		email:  email,
		sms:    sms,
		logger: logger.ForComponent(log, "welcome-sender"),
		now:    time.Now,
	}
}

type welcomeData struct {
	Name          string
	DashboardLink string
	Year          int
}

func (w *WelcomeSender) Send(ctx context.Context, to Recipient) (*Result, error) {
	to.Email = strings.TrimSpace(to.Email)
	if to.Email == "" {
		return nil, errors.NewInvalidInputError("email is required")
	}
	if !validation.ValidateEmail(to.Email) {
		return nil, errors.NewInvalidInputError("invalid email address: " + to.Email)
	}
	if w.email == nil || w.cfg.FromEmail == "" {
		return nil, errors.NewNotificationSendFailedError("email", fmt.Errorf("email service is not configured"))
	}

	data := welcomeData{
		Name:          displayName(to.Name),
		DashboardLink: strings.TrimRight(w.cfg.AppURL, "/") + "/dashboard",
		Year:          w.now().Year(),
	}
	text, html, err := render(data)
	if err != nil {
		return nil, errors.NewNotificationSendFailedError("email", err)
	}

	id, err := w.email.SendEmail(ctx, aws.Email{
		From:     fmt.Sprintf("%s <%s>", w.cfg.FromName, w.cfg.FromEmail),
		To:       to.Email,
		Subject:  WelcomeSubject,
		TextBody: text,
		HTMLBody: html,
	})
	if err != nil {
		return nil, errors.NewNotificationSendFailedError("email", err)
	}

	res := &Result{MessageID: id, EmailSent: true}
	w.logger.Info("welcome email sent", map[string]interface{}{"to": to.Email, "messageId": id})

	if w.sms != nil && to.PhoneNumber != "" {
		msg := fmt.Sprintf("Welcome to Scholarship Tracker, %s! Start exploring scholarships: %s", data.Name, data.DashboardLink)
		if _, err := w.sms.SendSMS(ctx, smsNumber(to.PhoneNumber), msg); err != nil {
			w.logger.Warn("welcome sms failed", map[string]interface{}{"error": err.Error()})
		} else {
			res.SMSSent = true
		}
	}
	return res, nil
}

func displayName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return "Student"
}

// smsNumber adds the India country code to bare ten-digit numbers.
func smsNumber(phone string) string {
	p := strings.TrimSpace(phone)
	if len(p) == 10 && validation.ValidatePhone(p) {
		return "+91" + p
	}
	return p
}

func render(d welcomeData) (string, string, error) {
	var text, html bytes.Buffer
	if err := welcomeText.Execute(&text, d); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	if err := welcomeHTML.Execute(&html, d); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	return text.String(), html.String(), nil
}

var welcomeText = texttemplate.Must(texttemplate.New("welcome.txt").Parse(`Welcome, {{.Name}}!

You've successfully logged in to Scholarship Tracker! 🎉

Start exploring scholarships and apply now to get funding for your education. We're here to help you find the perfect scholarship opportunities.

Go to Apply Scholarships: {{.DashboardLink}}

If you have any questions or need assistance, feel free to reach out to our support team.

© {{.Year}} Scholarship Tracker. All rights reserved.

You're receiving this email because you signed up for Scholarship Tracker.
`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome.html").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome to Scholarship Tracker</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
  <table role="presentation" style="width: 100%; border-collapse: collapse;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" style="max-width: 600px; width: 100%; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 40px 40px 20px; text-align: center; background: #667eea; border-radius: 8px 8px 0 0;">
              <h1 style="margin: 0; color: #ffffff; font-size: 28px;">🎓 Welcome to Scholarship Tracker!</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px;">
              <h2 style="margin: 0 0 20px; color: #1a1a1a;">Welcome, {{.Name}}!</h2>
              <p style="color: #4a4a4a; font-size: 16px;">You've successfully logged in to <strong>Scholarship Tracker</strong>! 🎉</p>
              <p style="color: #4a4a4a; font-size: 16px;">Start exploring scholarships and apply now to get funding for your education. We're here to help you find the perfect scholarship opportunities.</p>
              <p style="text-align: center; margin: 30px 0;">
                <a href="{{.DashboardLink}}" style="display: inline-block; padding: 16px 32px; background: #667eea; color: #ffffff; text-decoration: none; border-radius: 6px;">Go to Apply Scholarships</a>
              </p>
              <p style="color: #6b7280; font-size: 14px;">If you have any questions or need assistance, feel free to reach out to our support team.</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px 40px; background-color: #f9fafb; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; color: #6b7280; font-size: 12px; text-align: center;">© {{.Year}} Scholarship Tracker. All rights reserved.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))
