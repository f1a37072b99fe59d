// internal/workers/communication/send-welcome-email/models.go
package sendwelcomeemail

type Input struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type Output struct {
	MessageID string `json:"messageId"`
	EmailSent bool   `json:"emailSent"`
	SMSSent   bool   `json:"smsSent"`
}
