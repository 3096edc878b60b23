package checkout

import (
	"errors"
	"fmt"

	"checkout/internal/pkg/errs"
)

var (
	// ErrSessionConsumed is returned when an operation targets a session
	// whose submission already produced an order. A consumed session can
	// never submit again; this is the aggregate-level idempotency guard.
	ErrSessionConsumed = errors.New("checkout session is already consumed")

	// ErrSubmissionInFlight is returned when a second submission is started
	// while one is still outstanding for the same session.
	ErrSubmissionInFlight = errors.New("order submission is already in flight")
)

// SubmissionStatus tracks the submission lifecycle of a checkout session.
//
// Status transitions:
//
//	NotSubmitted ──> InFlight ──┬──> Consumed (order created, terminal)
//	       ^                    │
//	       └────────────────────┘
//	        (submission failed)
//
// The status exists to guarantee exactly one order per session: a session
// with an outstanding submission refuses a second one, and a consumed
// session refuses everything.
type SubmissionStatus int

const (
	// SubmissionUnknown represents an invalid or undefined status.
	SubmissionUnknown SubmissionStatus = iota

	// SubmissionNotSubmitted means no submission attempt is outstanding.
	// New sessions start here, and failed submissions return here.
	SubmissionNotSubmitted

	// SubmissionInFlight means a submission has begun and its outcome is
	// not yet known. The session is locked against edits and re-submits.
	SubmissionInFlight

	// SubmissionConsumed means the submission succeeded and an order
	// exists. Terminal.
	SubmissionConsumed
)

func getSubmissionStatusStrings() map[SubmissionStatus]string {
	return map[SubmissionStatus]string{
		SubmissionUnknown:      "Unknown",
		SubmissionNotSubmitted: "NotSubmitted",
		SubmissionInFlight:     "InFlight",
		SubmissionConsumed:     "Consumed",
	}
}

func getValidSubmissionStatusStrings() map[SubmissionStatus]string {
	//nolint:exhaustive // SubmissionUnknown is intentionally excluded as it's invalid
	return map[SubmissionStatus]string{
		SubmissionNotSubmitted: "NotSubmitted",
		SubmissionInFlight:     "InFlight",
		SubmissionConsumed:     "Consumed",
	}
}

// SubmissionStatusFromString parses a persisted submission status name.
func SubmissionStatusFromString(s string) (SubmissionStatus, error) {
	for status, str := range getValidSubmissionStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"submission status is invalid",
		fmt.Errorf("%q is not a valid submission status", s),
	)
}

// Validate checks if the SubmissionStatus value is valid.
func (s SubmissionStatus) Validate() error {
	if _, ok := getValidSubmissionStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"submission status is invalid",
			fmt.Errorf("%d is not a valid submission status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the submission status.
func (s SubmissionStatus) String() string {
	if str, ok := getSubmissionStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Begin transitions the status to InFlight.
//
// Valid transitions:
//   - NotSubmitted -> InFlight
//
// Returns ErrSubmissionInFlight when a submission is already outstanding
// and ErrSessionConsumed when the session already produced an order.
func (s SubmissionStatus) Begin() (SubmissionStatus, error) {
	switch s {
	case SubmissionConsumed:
		return 0, ErrSessionConsumed
	case SubmissionInFlight:
		return 0, ErrSubmissionInFlight
	case SubmissionNotSubmitted:
		return SubmissionInFlight, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"submission status is invalid",
			fmt.Errorf("%s is not a valid status to begin submission", s.String()),
		)
	}
}

// Complete transitions the status to Consumed. Only an in-flight
// submission can complete.
func (s SubmissionStatus) Complete() (SubmissionStatus, error) {
	if s != SubmissionInFlight {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"submission status is invalid",
			fmt.Errorf("%s is not a valid status to complete submission", s.String()),
		)
	}
	return SubmissionConsumed, nil
}

// Fail returns an in-flight submission to NotSubmitted so the customer can
// retry with the session data intact.
func (s SubmissionStatus) Fail() (SubmissionStatus, error) {
	if s != SubmissionInFlight {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"submission status is invalid",
			fmt.Errorf("%s is not a valid status to fail submission", s.String()),
		)
	}
	return SubmissionNotSubmitted, nil
}
