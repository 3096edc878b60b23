package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// ContactInput is the raw contact-step input.
type ContactInput struct {
	Name  string
	Phone string
	Email string
}

// ValidateContact checks the contact step. Name, phone, and email are all
// required; the order confirmation is sent to the email address.
func ValidateContact(in ContactInput) FieldErrors {
	fe := FieldErrors{}

	if strings.TrimSpace(in.Name) == "" {
		fe["name"] = "name is required"
	}

	phone := strings.TrimSpace(in.Phone)
	switch {
	case phone == "":
		fe["phone"] = "phone is required"
	case !phonePattern.MatchString(phone) || strings.IndexAny(phone, "0123456789") == -1:
		fe["phone"] = "phone number is invalid"
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		fe["email"] = "email is required"
	case !emailPattern.MatchString(email):
		fe["email"] = "email address is invalid"
	}

	return fe
}

// AddressInput is the raw delivery-address input.
type AddressInput struct {
	Street   string
	Building string
	Area     string
	City     string
	Notes    string
}

// ValidateAddress checks the delivery address step. Street, building, and
// area are required; city defaults elsewhere and notes are free-form.
func ValidateAddress(in AddressInput) FieldErrors {
	fe := FieldErrors{}

	if strings.TrimSpace(in.Street) == "" {
		fe["street"] = "street is required"
	}
	if strings.TrimSpace(in.Building) == "" {
		fe["building"] = "building is required"
	}
	if strings.TrimSpace(in.Area) == "" {
		fe["area"] = "area is required"
	}

	return fe
}

// CardInput is the raw card-payment input. The number may contain spaces or
// dashes; it is normalized before checking.
type CardInput struct {
	Number     string
	HolderName string
	Expiry     string // MM/YY
	CVV        string
}

// NormalizeCardNumber strips every non-digit character from a card number.
func NormalizeCardNumber(number string) string {
	return nonDigits.ReplaceAllString(number, "")
}

// ValidateCard checks card details at the payment step. The expiry month
// must not be in the past relative to now.
func ValidateCard(in CardInput, now time.Time) FieldErrors {
	fe := FieldErrors{}

	if digits := NormalizeCardNumber(in.Number); len(digits) != 16 {
		fe["cardNumber"] = "card number must have 16 digits"
	}

	if strings.TrimSpace(in.HolderName) == "" {
		fe["holderName"] = "cardholder name is required"
	}

	if err := validateExpiry(in.Expiry, now); err != "" {
		fe["expiryDate"] = err
	}

	if cvv := strings.TrimSpace(in.CVV); len(cvv) < 3 || len(cvv) > 4 || nonDigits.MatchString(cvv) {
		fe["cvv"] = "cvv must have 3 or 4 digits"
	}

	return fe
}

func validateExpiry(expiry string, now time.Time) string {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "expiry date must be in MM/YY format"
	}

	month, err := time.Parse("01", parts[0])
	if err != nil {
		return "expiry date must be in MM/YY format"
	}
	year, err := time.Parse("06", parts[1])
	if err != nil {
		return "expiry date must be in MM/YY format"
	}

	// The card is valid through the last moment of its expiry month.
	expiresAfter := time.Date(year.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !now.Before(expiresAfter) {
		return "card has expired"
	}

	return ""
}
