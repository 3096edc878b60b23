package checkout

import (
	"errors"
	"fmt"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was not
	// created through the NewSession or RestoreSession factory methods.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession constructor")

	// ErrEmptyCart is returned when a submission begins against an empty
	// cart. The session returns to the contact step so the customer starts
	// over after refilling the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// Session is the aggregate root for one walk through the checkout flow. It
// owns the step state machine, the captured per-step data, the cart
// snapshot, and the idempotency token used for order submission.
//
// Session follows these invariants:
//   - The step only advances through the per-step Submit methods, each of
//     which requires the session to be at the matching step
//   - The idempotency token is minted exactly once, at session creation,
//     and never changes
//   - Captured data survives backward navigation and fulfillment-type
//     switches only switch away the type-specific payload
//   - A consumed session accepts no further operations; an in-flight
//     submission locks the session until it is confirmed or failed
type Session struct {
	// id is the unique identifier of the checkout session
	id kernel.UUID

	// cartID references the cart this session is checking out
	cartID kernel.UUID

	// token is the idempotency token sent with every submission attempt
	token kernel.UUID

	// snapshot is the cart contents captured at start or last refresh
	snapshot cart.Snapshot

	// contact holds the contact step data once submitted
	contact *ContactInfo

	// fulfillmentType is the currently chosen type (delivery by default)
	fulfillmentType FulfillmentType

	// fulfillment holds the fulfillment step data once submitted
	fulfillment *Fulfillment

	// payment holds the payment step data once submitted
	payment *PaymentSelection

	// orderID references the order created by a successful submission
	orderID *kernel.UUID

	// step is the customer's current position in the flow
	step Step

	// submission tracks the submission lifecycle
	submission SubmissionStatus

	isConstructed bool
}

// NewSession starts a checkout session for a cart. The session begins at
// the contact step with delivery preselected, and mints its idempotency
// token immediately so every later submission attempt reuses the same one.
func NewSession(id kernel.UUID, cartID kernel.UUID, snapshot cart.Snapshot) (*Session, error) {
	session := &Session{
		token:           kernel.NewUUID(),
		fulfillmentType: FulfillmentTypeDelivery,
		step:            StepContact,
		submission:      SubmissionNotSubmitted,
		isConstructed:   true,
	}

	if err := errors.Join(
		session.setID(id),
		session.setCartID(cartID),
		session.setSnapshot(snapshot),
	); err != nil {
		return nil, err
	}

	return session, nil
}

// RestoreSession reconstructs a session from persistence. All invariants
// are re-validated so corrupted rows cannot re-enter the domain.
func RestoreSession(
	id kernel.UUID,
	cartID kernel.UUID,
	token kernel.UUID,
	snapshot cart.Snapshot,
	contact *ContactInfo,
	fulfillmentType FulfillmentType,
	fulfillment *Fulfillment,
	payment *PaymentSelection,
	orderID *kernel.UUID,
	step Step,
	submission SubmissionStatus,
) (*Session, error) {
	session := &Session{
		fulfillmentType: fulfillmentType,
		step:            step,
		submission:      submission,
		isConstructed:   true,
	}

	if err := errors.Join(
		session.setID(id),
		session.setCartID(cartID),
		session.setSnapshot(snapshot),
		token.Validate(),
		fulfillmentType.Validate(),
		step.Validate(),
		submission.Validate(),
	); err != nil {
		return nil, err
	}
	session.token = token

	if contact != nil {
		if err := contact.Validate(); err != nil {
			return nil, err
		}
		session.contact = contact
	}
	if fulfillment != nil {
		if err := fulfillment.Validate(); err != nil {
			return nil, err
		}
		session.fulfillment = fulfillment
	}
	if payment != nil {
		if err := payment.Validate(); err != nil {
			return nil, err
		}
		session.payment = payment
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
		session.orderID = orderID
	}

	return session, nil
}

// Validate ensures the Session was created through a constructor.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() kernel.UUID {
	return s.id
}

// CartID returns the identifier of the cart being checked out.
func (s *Session) CartID() kernel.UUID {
	return s.cartID
}

// Token returns the session's idempotency token. The token is minted once
// at session creation; every submission attempt for this session carries
// the same value.
func (s *Session) Token() kernel.UUID {
	return s.token
}

// Snapshot returns the cart contents the session currently holds.
func (s *Session) Snapshot() cart.Snapshot {
	return s.snapshot
}

// Contact returns the submitted contact details, or false if the contact
// step has not been completed.
func (s *Session) Contact() (ContactInfo, bool) {
	if s.contact == nil {
		return ContactInfo{}, false
	}
	return *s.contact, true
}

// FulfillmentType returns the currently chosen fulfillment type.
func (s *Session) FulfillmentType() FulfillmentType {
	return s.fulfillmentType
}

// Fulfillment returns the submitted fulfillment, or false if the
// fulfillment step has not been completed.
func (s *Session) Fulfillment() (Fulfillment, bool) {
	if s.fulfillment == nil {
		return Fulfillment{}, false
	}
	return *s.fulfillment, true
}

// Payment returns the submitted payment selection, or false if the payment
// step has not been completed.
func (s *Session) Payment() (PaymentSelection, bool) {
	if s.payment == nil {
		return PaymentSelection{}, false
	}
	return *s.payment, true
}

// OrderID returns the order created by this session, or false before a
// successful submission.
func (s *Session) OrderID() (kernel.UUID, bool) {
	if s.orderID == nil {
		return kernel.UUID{}, false
	}
	return *s.orderID, true
}

// Step returns the customer's current step.
func (s *Session) Step() Step {
	return s.step
}

// SubmissionStatus returns the submission lifecycle state.
func (s *Session) SubmissionStatus() SubmissionStatus {
	return s.submission
}

// SubmitContact completes the contact step and advances to the
// fulfillment-phase step for the currently chosen fulfillment type.
//
// Only allowed at the contact step (including after backward navigation
// returned there; previously captured data stays intact for pre-filling).
func (s *Session) SubmitContact(contact ContactInfo) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if err := contact.Validate(); err != nil {
		return err
	}
	if s.step != StepContact {
		return s.stepMismatch(StepContact)
	}

	next, err := StepForFulfillment(s.fulfillmentType)
	if err != nil {
		return err
	}

	s.contact = &contact
	s.step = next
	return nil
}

// ChooseFulfillmentType switches between delivery and pickup. Only allowed
// during the fulfillment phase. Switching to a different type discards the
// previously captured type-specific payload; re-choosing the same type is a
// no-op that keeps it.
func (s *Session) ChooseFulfillmentType(fulfillmentType FulfillmentType) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if err := fulfillmentType.Validate(); err != nil {
		return err
	}
	if !s.step.IsFulfillmentPhase() {
		return errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("fulfillment type can only be chosen during the fulfillment phase, not at %s", s.step.String()),
		)
	}

	next, err := StepForFulfillment(fulfillmentType)
	if err != nil {
		return err
	}

	if fulfillmentType != s.fulfillmentType {
		s.fulfillment = nil
	}
	s.fulfillmentType = fulfillmentType
	s.step = next
	return nil
}

// SubmitFulfillment completes the fulfillment step and advances to payment.
// The payload's type must match the session's chosen fulfillment type.
func (s *Session) SubmitFulfillment(fulfillment Fulfillment) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if err := fulfillment.Validate(); err != nil {
		return err
	}
	if !s.step.IsFulfillmentPhase() {
		return s.stepMismatch(s.expectedFulfillmentStep())
	}
	if fulfillment.Type() != s.fulfillmentType {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillment is invalid",
			fmt.Errorf("%s payload does not match chosen type %s",
				fulfillment.Type().String(), s.fulfillmentType.String()),
		)
	}

	s.fulfillment = &fulfillment
	s.step = StepPayment
	return nil
}

// SubmitPayment completes the payment step. The session stays at the
// payment step; only a confirmed submission reaches confirmation.
func (s *Session) SubmitPayment(payment PaymentSelection) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	if s.step != StepPayment {
		return s.stepMismatch(StepPayment)
	}

	s.payment = &payment
	return nil
}

// RefreshSnapshot replaces the session's cart snapshot with the cart's
// current contents. Called right before submission so the order reflects
// any cart edits made mid-checkout.
func (s *Session) RefreshSnapshot(snapshot cart.Snapshot) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	return s.setSnapshot(snapshot)
}

// BeginSubmission locks the session for an order submission attempt.
//
// Fails with ErrSessionConsumed or ErrSubmissionInFlight per the
// submission status, with a step error when the payment step is not
// complete, and with ErrEmptyCart when the snapshot holds no items; in the
// empty-cart case the session returns to the contact step.
func (s *Session) BeginSubmission() error {
	next, err := s.submission.Begin()
	if err != nil {
		return err
	}
	if s.step != StepPayment || s.payment == nil {
		return s.stepMismatch(StepPayment)
	}
	if s.snapshot.IsEmpty() {
		s.step = StepContact
		return ErrEmptyCart
	}

	s.submission = next
	return nil
}

// ConfirmSubmission records the created order, consumes the session, and
// moves it to the terminal confirmation step.
func (s *Session) ConfirmSubmission(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	next, err := s.submission.Complete()
	if err != nil {
		return err
	}

	s.submission = next
	s.orderID = &orderID
	s.step = StepConfirmation
	return nil
}

// FailSubmission releases the submission lock after a failed attempt. All
// captured data stays intact so the customer can retry.
func (s *Session) FailSubmission() error {
	next, err := s.submission.Fail()
	if err != nil {
		return err
	}

	s.submission = next
	return nil
}

// GoBack moves one step backward with all captured data retained. Moving
// back from the contact step is a no-op; the terminal confirmation step
// allows no navigation.
func (s *Session) GoBack() error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	previous, err := s.step.Back(s.fulfillmentType)
	if err != nil {
		return err
	}

	s.step = previous
	return nil
}

// Abandon checks that the session may be discarded. Allowed at every
// non-terminal step as long as no submission is outstanding; the caller
// deletes the session (and with it the idempotency token) afterwards.
func (s *Session) Abandon() error {
	return s.ensureEditable()
}

// ensureEditable rejects operations on consumed or submission-locked
// sessions.
func (s *Session) ensureEditable() error {
	switch s.submission {
	case SubmissionConsumed:
		return ErrSessionConsumed
	case SubmissionInFlight:
		return ErrSubmissionInFlight
	default:
		return nil
	}
}

func (s *Session) expectedFulfillmentStep() Step {
	if s.fulfillmentType == FulfillmentTypePickup {
		return StepBranch
	}
	return StepAddress
}

func (s *Session) stepMismatch(expected Step) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"step is invalid",
		fmt.Errorf("session is at %s, expected %s", s.step.String(), expected.String()),
	)
}

func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Session) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}
	s.cartID = cartID
	return nil
}

func (s *Session) setSnapshot(snapshot cart.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	s.snapshot = snapshot
	return nil
}
