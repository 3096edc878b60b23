package checkout

import (
	"checkout/internal/core/domain/validation"
	"checkout/internal/pkg/guard"
)

// ErrContactInfoIsNotConstructed is returned when validating a zero-value
// ContactInfo.
var ErrContactInfoIsNotConstructed = guard.ErrDefaultConstructorGuard

// ContactInfo holds the customer details captured at the contact step.
// Name, phone, and email are all required.
type ContactInfo struct { //nolint:recvcheck //using for validation
	name  string
	phone string
	email string
	guard guard.ConstructorGuard
}

// NewContactInfo creates validated contact details. When the input fails
// validation, the returned error is a validation.FieldErrors value carrying
// every failing field.
func NewContactInfo(name, phone, email string) (ContactInfo, error) {
	fieldErrors := validation.ValidateContact(validation.ContactInput{
		Name:  name,
		Phone: phone,
		Email: email,
	})
	if err := fieldErrors.AsError(); err != nil {
		return ContactInfo{}, err
	}

	return ContactInfo{
		name:  name,
		phone: phone,
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the ContactInfo was created through NewContactInfo.
func (c ContactInfo) Validate() error {
	return c.guard.Validate(ErrContactInfoIsNotConstructed)
}

// Name returns the customer's name.
func (c ContactInfo) Name() string {
	return c.name
}

// Phone returns the customer's phone number.
func (c ContactInfo) Phone() string {
	return c.phone
}

// Email returns the customer's email address.
func (c ContactInfo) Email() string {
	return c.email
}
