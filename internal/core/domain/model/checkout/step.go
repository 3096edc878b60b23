package checkout

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Step represents the customer's position in the checkout flow.
// It implements a mostly linear state machine with one branch:
// the fulfillment phase shows either the address step (delivery)
// or the branch step (pickup).
//
// Step transitions:
//
//	Contact ──┬──> Address ──┐
//	          │              ├──> Payment ──> Confirmation
//	          └──> Branch  ──┘
//
// Confirmation is terminal. Every other step can move backward
// with data retained.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	// This value (0) helps catch uninitialized Step values.
	StepUnknown Step = iota

	// StepContact collects the customer's name, phone, and email.
	// Every checkout session starts here.
	StepContact

	// StepAddress collects the delivery address. Shown only when the
	// fulfillment type is delivery.
	StepAddress

	// StepBranch selects the pickup branch. Shown only when the
	// fulfillment type is pickup.
	StepBranch

	// StepPayment selects the payment method and captures card details
	// when the card method is chosen.
	StepPayment

	// StepConfirmation is the terminal step reached after a successful
	// order submission. No further transitions are allowed.
	StepConfirmation
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:      "Unknown",
		StepContact:      "Contact",
		StepAddress:      "Address",
		StepBranch:       "Branch",
		StepPayment:      "Payment",
		StepConfirmation: "Confirmation",
	}
}

func getValidStepStrings() map[Step]string {
	//nolint:exhaustive // StepUnknown is intentionally excluded as it's invalid
	return map[Step]string{
		StepContact:      "Contact",
		StepAddress:      "Address",
		StepBranch:       "Branch",
		StepPayment:      "Payment",
		StepConfirmation: "Confirmation",
	}
}

// StepFromString parses a persisted step name.
func StepFromString(s string) (Step, error) {
	for step, str := range getValidStepStrings() {
		if str == s {
			return step, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"step is invalid",
		fmt.Errorf("%q is not a valid step", s),
	)
}

// Validate checks if the Step value is valid.
// StepUnknown (0) and out-of-range values are invalid.
func (s Step) Validate() error {
	if _, ok := getValidStepStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("step is invalid", fmt.Errorf("%d is not a valid step", s))
	}
	return nil
}

// String returns the human-readable name of the step.
// Implements fmt.Stringer; safe on any value.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the step allows no further transitions.
func (s Step) IsTerminal() bool {
	return s == StepConfirmation
}

// IsFulfillmentPhase reports whether the step is the branching middle of
// the flow, where the fulfillment type may still be switched.
func (s Step) IsFulfillmentPhase() bool {
	return s == StepAddress || s == StepBranch
}

// StepForFulfillment returns the fulfillment-phase step shown for the given
// fulfillment type: the address step for delivery, the branch step for
// pickup.
func StepForFulfillment(fulfillmentType FulfillmentType) (Step, error) {
	switch fulfillmentType {
	case FulfillmentTypeDelivery:
		return StepAddress, nil
	case FulfillmentTypePickup:
		return StepBranch, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"fulfillment type is invalid",
			fmt.Errorf("%s has no checkout step", fulfillmentType.String()),
		)
	}
}

// Back returns the step reached by moving backward from the current step.
// Moving back from the first step stays on the first step; moving back from
// the terminal confirmation step is not allowed.
//
// The fulfillment type determines which fulfillment-phase step the payment
// step returns to.
func (s Step) Back(fulfillmentType FulfillmentType) (Step, error) {
	switch s {
	case StepContact:
		return StepContact, nil
	case StepAddress, StepBranch:
		return StepContact, nil
	case StepPayment:
		return StepForFulfillment(fulfillmentType)
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("%s is not a valid step to go back from", s.String()),
		)
	}
}
