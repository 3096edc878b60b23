package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by Money. The shop
// prices in a three-decimal currency (fils), so amounts are exact to 0.001.
const MoneyScale = 3

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
// Money must be created via NewMoney, NewMoneyFromString, or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromString, or ZeroMoney constructors")

// Money is an immutable value object for exact currency amounts. All cart and
// order arithmetic goes through Money so subtotals never accumulate
// floating-point drift; amounts are stored as exact decimals and formatted to
// three fractional digits only at the presentation boundary.
//
// Example:
//
//	price, err := kernel.NewMoneyFromString("5.000")
//	if err != nil {
//	    // handle error
//	}
//	total, _ := price.MulQuantity(2)
//	fmt.Println(total) // Output: 10.000
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money from a decimal amount. The amount must not be
// negative and must not carry more than MoneyScale fractional digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if amount.Exponent() < -MoneyScale {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale),
		)
	}

	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// NewMoneyFromString parses a decimal string such as "5.000" into Money.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a constructed zero amount, suitable as the identity for
// summing subtotals.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate checks that the Money was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Add returns the exact sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}, nil
}

// MulQuantity returns the amount multiplied by an item quantity.
// The quantity must not be negative.
func (m Money) MulQuantity(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is negative", quantity),
		)
	}

	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Decimal returns the underlying exact decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal, independent of
// their decimal representation (5.0 equals 5.000).
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly MoneyScale fractional digits.
// This implements fmt.Stringer and is the presentation-boundary format.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
