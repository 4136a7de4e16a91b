package models

import (
	"strings"
	"time"
)

// ContactMessage is a submission of the storefront contact form.
type ContactMessage struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName   string    `json:"firstName" gorm:"type:varchar(100)" validate:"required,max=100"`
	LastName    string    `json:"lastName" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Email       string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	PhoneNumber string    `json:"phoneNumber" gorm:"type:varchar(32)" validate:"omitempty,e164|numeric"`
	Message     string    `json:"message" gorm:"type:text" validate:"required,max=2000"`
	CreatedAt   time.Time `json:"createdAt"`
}

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// Normalize trims the text fields, lowercases the email and strips the
// separators people type into phone numbers, so "+91 98919-89151" becomes
// "+919891989151". Validate after calling it.
func (m *ContactMessage) Normalize() {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.PhoneNumber = phoneSeparators.Replace(strings.TrimSpace(m.PhoneNumber))
	m.Message = strings.TrimSpace(m.Message)
}

// ContactDetails are the static addresses shown next to the contact form.
type ContactDetails struct {
	OperationOffice  string `json:"operationOffice"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	RegisteredOffice string `json:"registeredOffice"`
}
