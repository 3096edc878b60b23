package order

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Status represents the fulfillment lifecycle of a confirmed order.
// The order is only created after a successful submission, so Confirmed is
// the initial state; the kitchen drives the remaining transitions.
//
// State transitions:
//
//	Confirmed ──> Preparing ──> Ready ──> Completed
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Confirmed is the initial status of a successfully submitted order.
	Confirmed

	// Preparing indicates the kitchen has started on the order.
	Preparing

	// Ready indicates the order is ready for handover to the courier or
	// the customer.
	Ready

	// Completed indicates the order has been handed over.
	// This is a final state with no further transitions allowed.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Confirmed: "Confirmed",
		Preparing: "Preparing",
		Ready:     "Ready",
		Completed: "Completed",
	}
}

// StatusFromString parses a persisted status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartPreparing transitions the status to Preparing.
//
// Valid transitions:
//   - Confirmed -> Preparing
func (s Status) StartPreparing() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start preparing", s.String()),
		)
	}
	return Preparing, nil
}

// MarkReady transitions the status to Ready.
//
// Valid transitions:
//   - Preparing -> Ready
func (s Status) MarkReady() (Status, error) {
	if s != Preparing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark ready", s.String()),
		)
	}
	return Ready, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Ready -> Completed
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}
