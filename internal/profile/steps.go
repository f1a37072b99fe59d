// internal/profile/steps.go
package profile

import (
	"encoding/json"
	"fmt"
	"time"

	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/models"
)

// State is a wizard position: Step1..Step5, then the terminal Complete.
type State int

const (
	Step1 State = iota + 1
	Step2
	Step3
	Step4
	Step5
	Complete
)

const (
	FirstStep = 1
	LastStep  = 5
)

func (s State) String() string {
	if s == Complete {
		return "complete"
	}
	if s >= Step1 && s <= Step5 {
		return fmt.Sprintf("step%d", int(s))
	}
	return "unknown"
}

// Form is the raw field map submitted for one step.
type Form map[string]interface{}

var (
	digits = validation.String(`^[0-9]+$`)

	stepSchemas = map[int]*validation.Validator{
		1: validation.MustValidator(validation.JSONSchema{
			AdditionalProperties: true,
			Required:             []string{"fullName", "phoneNumber", "dateOfBirth", "gender", "address", "city", "state", "pincode", "country"},
			Properties: map[string]validation.Property{
				"fullName":     {Type: "string", MinLength: validation.Int(2), Message: "Full name must be at least 2 characters"},
				"phoneNumber":  {Type: "string", MinLength: validation.Int(10), Pattern: digits, Message: "Phone number must be at least 10 digits", Messages: map[string]string{"pattern": "Phone number must contain only digits"}},
				"dateOfBirth":  {Type: "string", MinLength: validation.Int(1), Message: "Date of birth is required"},
				"gender":       {Type: "string", Enum: []string{"male", "female", "other", "prefer-not-to-say"}, Message: "Please select a gender"},
				"address":      {Type: "string", MinLength: validation.Int(5), Message: "Address must be at least 5 characters"},
				"city":         {Type: "string", MinLength: validation.Int(2), Message: "City is required"},
				"state":        {Type: "string", MinLength: validation.Int(2), Message: "State is required"},
				"pincode":      {Type: "string", MinLength: validation.Int(6), MaxLength: validation.Int(6), Pattern: digits, Message: "Pincode must be 6 digits", Messages: map[string]string{"pattern": "Pincode must contain only digits"}},
				"country":      {Type: "string", MinLength: validation.Int(2), Message: "Country is required"},
				"aadharNumber": {Type: "string"},
			},
		}),
		2: validation.MustValidator(validation.JSONSchema{
			AdditionalProperties: true,
			Required:             []string{"fatherName", "motherName", "category"},
			Properties: map[string]validation.Property{
				"fatherName":         {Type: "string", MinLength: validation.Int(2), Message: "Father's name is required"},
				"fatherOccupation":   {Type: "string"},
				"fatherPhone":        {Type: "string"},
				"fatherEmail":        {Type: "string", Format: "email", Message: "Invalid email"},
				"motherName":         {Type: "string", MinLength: validation.Int(2), Message: "Mother's name is required"},
				"motherOccupation":   {Type: "string"},
				"motherPhone":        {Type: "string"},
				"motherEmail":        {Type: "string", Format: "email", Message: "Invalid email"},
				"annualFamilyIncome": {Type: "string"},
				"category":           {Type: "string", Enum: []string{"general", "obc", "sc", "st", "other"}, Message: "Please select a category"},
			},
		}),
		4: validation.MustValidator(validation.JSONSchema{
			AdditionalProperties: true,
			Required:             []string{"accountHolderName", "bankAccountNumber", "bankName", "ifscCode"},
			Properties: map[string]validation.Property{
				"accountHolderName": {Type: "string", MinLength: validation.Int(2), Message: "Account holder name is required"},
				"bankAccountNumber": {Type: "string", MinLength: validation.Int(5), Message: "Bank account number is required"},
				"bankName":          {Type: "string", MinLength: validation.Int(2), Message: "Bank name is required"},
				"ifscCode":          {Type: "string", MinLength: validation.Int(11), MaxLength: validation.Int(11), Message: "IFSC code must be 11 characters"},
			},
		}),
		5: validation.MustValidator(validation.JSONSchema{
			AdditionalProperties: true,
			Required:             []string{"declarationAccepted"},
			Properties: map[string]validation.Property{
				"declarationAccepted": {Type: "boolean", Const: true, Message: "You must accept the declaration to proceed"},
			},
		}),
	}

	// fields each step writes into the profile; step 2 nests under "parents"
	stepFields = map[int][]string{
		1: {"fullName", "phoneNumber", "dateOfBirth", "gender", "address", "city", "state", "pincode", "country", "aadharNumber"},
		2: {"fatherName", "fatherOccupation", "fatherPhone", "fatherEmail", "motherName", "motherOccupation", "motherPhone", "motherEmail", "annualFamilyIncome", "category"},
		3: {"academicRecords"},
		4: {"accountHolderName", "bankAccountNumber", "bankName", "ifscCode"},
		5: {"declarationAccepted"},
	}
)

// ValidateStep returns the field errors for step. Step 3 has no schema.
func ValidateStep(step int, form Form) []validation.ValidationError {
	v, ok := stepSchemas[step]
	if !ok {
		return nil
	}
	result := v.Validate(form)
	if result.Valid {
		return nil
	}
	return result.Errors
}

// applyStep merges the step's fields into p. Fields the form omits keep
// their stored values; step 2 replaces the parent details as a whole.
func applyStep(p *models.StudentProfile, step int, form Form, now time.Time) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	if step == 2 {
		parents := map[string]interface{}{}
		for _, k := range stepFields[2] {
			if v, ok := form[k]; ok {
				parents[k] = v
			}
		}
		doc["parents"] = parents
	} else {
		for _, k := range stepFields[step] {
			if v, ok := form[k]; ok {
				doc[k] = v
			}
		}
	}
	if step == LastStep {
		doc["declarationDate"] = now
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var out models.StudentProfile
	if err := json.Unmarshal(merged, &out); err != nil {
		return err
	}
	*p = out
	return nil
}

func newProfile(uid, email string, now time.Time) *models.StudentProfile {
	return &models.StudentProfile{
		UID:         uid,
		Email:       email,
		Gender:      models.GenderMale,
		Country:     "India",
		CurrentStep: FirstStep,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// stateOf is the resume position for a stored profile.
func stateOf(p *models.StudentProfile) State {
	switch {
	case p == nil:
		return Step1
	case p.IsProfileComplete:
		return Complete
	case p.CurrentStep < FirstStep:
		return Step1
	case p.CurrentStep > LastStep:
		return Step5
	default:
		return State(p.CurrentStep)
	}
}
