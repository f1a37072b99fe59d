// internal/profile/steps_test.go
package profile

import (
	"testing"
	"time"

	"scholarship-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStep1() Form {
	return Form{
		"fullName":    "Asha Kumari",
		"phoneNumber": "9876543210",
		"dateOfBirth": "2004-05-01",
		"gender":      "female",
		"address":     "12 Gandhi Path",
		"city":        "Patna",
		"state":       "Bihar",
		"pincode":     "800001",
		"country":     "India",
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name      string
		step      int
		form      func() Form
		wantField string
		wantMsg   string
	}{
		{
			name: "step 1 valid",
			step: 1,
			form: validStep1,
		},
		{
			name: "step 1 empty full name",
			step: 1,
			form: func() Form {
				f := validStep1()
				f["fullName"] = ""
				return f
			},
			wantField: "fullName",
			wantMsg:   "Full name must be at least 2 characters",
		},
		{
			name: "step 1 pincode letters",
			step: 1,
			form: func() Form {
				f := validStep1()
				f["pincode"] = "80000A"
				return f
			},
			wantField: "pincode",
			wantMsg:   "Pincode must contain only digits",
		},
		{
			name: "step 2 bad category",
			step: 2,
			form: func() Form {
				return Form{"fatherName": "Ram", "motherName": "Sita", "category": "vip"}
			},
			wantField: "category",
			wantMsg:   "Please select a category",
		},
		{
			name: "step 3 always passes",
			step: 3,
			form: func() Form { return Form{} },
		},
		{
			name: "step 4 short ifsc",
			step: 4,
			form: func() Form {
				return Form{"accountHolderName": "Asha", "bankAccountNumber": "123456", "bankName": "SBI", "ifscCode": "SBIN01"}
			},
			wantField: "ifscCode",
			wantMsg:   "IFSC code must be 11 characters",
		},
		{
			name:      "step 5 declaration not accepted",
			step:      5,
			form:      func() Form { return Form{"declarationAccepted": false} },
			wantField: "declarationAccepted",
			wantMsg:   "You must accept the declaration to proceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStep(tt.step, tt.form())
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantMsg, errs[0].Message)
		})
	}
}

func TestApplyStep_ParentsReplaced(t *testing.T) {
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	p := newProfile("u1", "a@example.in", now)
	p.Parents = &models.ParentDetails{FatherName: "Old", FatherPhone: "111"}

	err := applyStep(p, 2, Form{"fatherName": "Ram", "motherName": "Sita", "category": "obc", "annualFamilyIncome": "150000"}, now)

	require.NoError(t, err)
	require.NotNil(t, p.Parents)
	assert.Equal(t, "Ram", p.Parents.FatherName)
	assert.Empty(t, p.Parents.FatherPhone)
	assert.Equal(t, models.CategoryOBC, p.Category())
	assert.Equal(t, "150000", p.FamilyIncome())
	assert.Equal(t, "u1", p.UID)
}

func TestApplyStep_KeepsOmittedFields(t *testing.T) {
	now := time.Now().UTC()
	p := newProfile("u1", "", now)
	p.City = "Patna"

	require.NoError(t, applyStep(p, 1, Form{"fullName": "Asha"}, now))

	assert.Equal(t, "Asha", p.FullName)
	assert.Equal(t, "Patna", p.City)
	assert.Equal(t, "India", p.Country)
}

func TestApplyStep_AcademicRecords(t *testing.T) {
	now := time.Now().UTC()
	p := newProfile("u1", "", now)

	err := applyStep(p, 3, Form{"academicRecords": []interface{}{
		map[string]interface{}{"level": "12th", "institution": "DAV", "percentageOrCGPA": "88"},
	}}, now)
	require.NoError(t, err)
	require.Len(t, p.AcademicRecords, 1)
	assert.Equal(t, "DAV", p.AcademicRecords[0].Institution)

	err = applyStep(p, 3, Form{"academicRecords": "not a list"}, now)
	assert.Error(t, err)
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name string
		p    *models.StudentProfile
		want State
	}{
		{"new user", nil, Step1},
		{"mid form", &models.StudentProfile{CurrentStep: 3}, Step3},
		{"zero step", &models.StudentProfile{}, Step1},
		{"complete", &models.StudentProfile{CurrentStep: 5, IsProfileComplete: true}, Complete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stateOf(tt.p))
		})
	}
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "step2", Step2.String())
}
