// internal/models/profile.go
package models

import "time"

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

type Category string

const (
	CategoryGeneral Category = "general"
	CategoryOBC     Category = "obc"
	CategorySC      Category = "sc"
	CategoryST      Category = "st"
	CategoryOther   Category = "other"
)

type StudentProfile struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       Gender `json:"gender"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
	AadharNumber string `json:"aadharNumber,omitempty"`

	Parents         *ParentDetails   `json:"parents,omitempty"`
	AcademicRecords []AcademicRecord `json:"academicRecords,omitempty"`

	BankAccountNumber string `json:"bankAccountNumber,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`

	DeclarationAccepted bool       `json:"declarationAccepted"`
	DeclarationDate     *time.Time `json:"declarationDate,omitempty"`

	CurrentStep       int        `json:"currentStep"`
	IsProfileComplete bool       `json:"isProfileComplete"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Category returns the family category recorded with the parent details.
func (p *StudentProfile) Category() Category {
	if p == nil || p.Parents == nil {
		return ""
	}
	return p.Parents.Category
}

// FamilyIncome returns the free-text annual family income.
func (p *StudentProfile) FamilyIncome() string {
	if p == nil || p.Parents == nil {
		return ""
	}
	return p.Parents.AnnualFamilyIncome
}

type ParentDetails struct {
	FatherName         string   `json:"fatherName"`
	FatherOccupation   string   `json:"fatherOccupation,omitempty"`
	FatherPhone        string   `json:"fatherPhone,omitempty"`
	FatherEmail        string   `json:"fatherEmail,omitempty"`
	MotherName         string   `json:"motherName"`
	MotherOccupation   string   `json:"motherOccupation,omitempty"`
	MotherPhone        string   `json:"motherPhone,omitempty"`
	MotherEmail        string   `json:"motherEmail,omitempty"`
	AnnualFamilyIncome string   `json:"annualFamilyIncome,omitempty"`
	Category           Category `json:"category"`
}

type AcademicRecord struct {
	Level             AcademicLevel `json:"level"`
	BoardOrUniversity string        `json:"boardOrUniversity"`
	Institution       string        `json:"institution"`
	YearOfPassing     string        `json:"yearOfPassing"`
	PercentageOrCGPA  string        `json:"percentageOrCGPA"`
	MarksheetURL      string        `json:"marksheetUrl,omitempty"`
	MarksheetFileName string        `json:"marksheetFileName,omitempty"`
}
