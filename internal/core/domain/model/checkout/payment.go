package checkout

import (
	"fmt"
	"time"

	"checkout/internal/core/domain/validation"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// PaymentMethod selects how the customer pays: cash on handover or card.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCash pays in cash at delivery or pickup.
	PaymentMethodCash

	// PaymentMethodCard pays with a card captured during checkout.
	PaymentMethodCard
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "Unknown",
		PaymentMethodCash:    "Cash",
		PaymentMethodCard:    "Card",
	}
}

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentMethodCash: "Cash",
		PaymentMethodCard: "Card",
	}
}

// PaymentMethodFromString parses a persisted or transported method name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getValidPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the human-readable name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// ErrCardIsNotConstructed is returned when validating a zero-value Card.
var ErrCardIsNotConstructed = guard.ErrDefaultConstructorGuard

// Card holds validated card details. The number is stored normalized
// (digits only); presentation always goes through MaskedNumber.
type Card struct { //nolint:recvcheck //using for validation
	number     string
	holderName string
	expiry     string
	cvv        string
	guard      guard.ConstructorGuard
}

// NewCard creates a validated card. The number may contain spaces or
// dashes; the expiry is MM/YY and must not be in the past relative to now.
// A validation failure returns a validation.FieldErrors value.
func NewCard(number, holderName, expiry, cvv string, now time.Time) (Card, error) {
	fieldErrors := validation.ValidateCard(validation.CardInput{
		Number:     number,
		HolderName: holderName,
		Expiry:     expiry,
		CVV:        cvv,
	}, now)
	if err := fieldErrors.AsError(); err != nil {
		return Card{}, err
	}

	return Card{
		number:     validation.NormalizeCardNumber(number),
		holderName: holderName,
		expiry:     expiry,
		cvv:        cvv,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreCard reconstructs a card from persistence. The expiry is not
// re-checked against the clock so a session saved before a month boundary
// can still be loaded.
func RestoreCard(number, holderName, expiry, cvv string) (Card, error) {
	if number == "" || holderName == "" || expiry == "" || cvv == "" {
		return Card{}, errs.NewValueIsRequiredError("card details")
	}

	return Card{
		number:     validation.NormalizeCardNumber(number),
		holderName: holderName,
		expiry:     expiry,
		cvv:        cvv,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Card was created through NewCard.
func (c Card) Validate() error {
	return c.guard.Validate(ErrCardIsNotConstructed)
}

// Number returns the normalized 16-digit card number.
func (c Card) Number() string { return c.number }

// HolderName returns the cardholder name.
func (c Card) HolderName() string { return c.holderName }

// Expiry returns the MM/YY expiry.
func (c Card) Expiry() string { return c.expiry }

// CVV returns the card verification value.
func (c Card) CVV() string { return c.cvv }

// MaskedNumber returns the number with all but the last four digits hidden,
// e.g. "**** **** **** 1111".
func (c Card) MaskedNumber() string {
	if len(c.number) < 4 {
		return "****"
	}
	return "**** **** **** " + c.number[len(c.number)-4:]
}

// ErrPaymentSelectionIsNotConstructed is returned when validating a
// zero-value PaymentSelection.
var ErrPaymentSelectionIsNotConstructed = guard.ErrDefaultConstructorGuard

// PaymentSelection captures the completed payment step. Cash carries no
// card data by construction; card selections always carry a valid card.
type PaymentSelection struct { //nolint:recvcheck //using for validation
	method PaymentMethod
	card   *Card
	guard  guard.ConstructorGuard
}

// NewCashPayment selects cash payment.
func NewCashPayment() PaymentSelection {
	return PaymentSelection{
		method: PaymentMethodCash,
		guard:  guard.NewConstructorGuard(),
	}
}

// NewCardPayment selects card payment with the given validated card.
func NewCardPayment(card Card) (PaymentSelection, error) {
	if err := card.Validate(); err != nil {
		return PaymentSelection{}, err
	}

	return PaymentSelection{
		method: PaymentMethodCard,
		card:   &card,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the PaymentSelection was created through a
// constructor.
func (p PaymentSelection) Validate() error {
	return p.guard.Validate(ErrPaymentSelectionIsNotConstructed)
}

// Method returns the chosen payment method.
func (p PaymentSelection) Method() PaymentMethod {
	return p.method
}

// Card returns the card for card payments. The second return is false for
// cash.
func (p PaymentSelection) Card() (Card, bool) {
	if p.card == nil {
		return Card{}, false
	}
	return *p.card, true
}

// Summary returns a one-line description used on the order record, e.g.
// "Cash" or "Card ending 1111".
func (p PaymentSelection) Summary() string {
	if p.card != nil {
		number := p.card.Number()
		if len(number) >= 4 {
			return "Card ending " + number[len(number)-4:]
		}
	}
	return p.method.String()
}
