// internal/workers/communication/send-welcome-email/validation.go
package sendwelcomeemail

import "scholarship-workers/internal/common/validation"

var inputValidator = validation.MustValidator(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"email"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"email": {
				Type:        "string",
				Description: "Recipient email address",
				Format:      "email",
				MaxLength:   validation.Int(255),
				Message:     "A valid email address is required",
			},
			"name": {
				Type:        "string",
				Description: "Display name used in the greeting",
				MaxLength:   validation.Int(200),
			},
			"phoneNumber": {
				Type:        "string",
				Description: "Optional mobile number for the SMS copy",
				Pattern:     validation.String(`^\+?[0-9]{10,15}$`),
				Message:     "Phone number must be 10 to 15 digits",
			},
		},
	}
}
