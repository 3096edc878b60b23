package checkout

import (
	"fmt"
	"time"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// DeliveryEstimateBand is the estimate shown for immediate deliveries.
// Deliveries are not branch-specific, so a single band covers the whole
// service area.
const DeliveryEstimateBand = "30-45 minutes"

// ErrFulfillmentIsNotConstructed is returned when validating a zero-value
// Fulfillment.
var ErrFulfillmentIsNotConstructed = guard.ErrDefaultConstructorGuard

// Fulfillment captures the completed fulfillment step: the chosen type, its
// type-specific payload (address for delivery, branch for pickup), and the
// time selection. The constructors make an inconsistent combination
// unrepresentable.
type Fulfillment struct { //nolint:recvcheck //using for validation
	fulfillmentType FulfillmentType
	address         *AddressInfo
	branch          *Branch
	timeSelection   TimeSelection
	guard           guard.ConstructorGuard
}

// NewDeliveryFulfillment creates a delivery fulfillment to the given
// address.
func NewDeliveryFulfillment(address AddressInfo, timeSelection TimeSelection) (Fulfillment, error) {
	if err := address.Validate(); err != nil {
		return Fulfillment{}, err
	}
	if err := timeSelection.Validate(); err != nil {
		return Fulfillment{}, err
	}

	return Fulfillment{
		fulfillmentType: FulfillmentTypeDelivery,
		address:         &address,
		timeSelection:   timeSelection,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// NewPickupFulfillment creates a pickup fulfillment at the given branch.
func NewPickupFulfillment(branch Branch, timeSelection TimeSelection) (Fulfillment, error) {
	if err := branch.Validate(); err != nil {
		return Fulfillment{}, err
	}
	if err := timeSelection.Validate(); err != nil {
		return Fulfillment{}, err
	}

	return Fulfillment{
		fulfillmentType: FulfillmentTypePickup,
		branch:          &branch,
		timeSelection:   timeSelection,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Fulfillment was created through a constructor.
func (f Fulfillment) Validate() error {
	return f.guard.Validate(ErrFulfillmentIsNotConstructed)
}

// Type returns the fulfillment type.
func (f Fulfillment) Type() FulfillmentType {
	return f.fulfillmentType
}

// Address returns the delivery address. The second return is false for
// pickup fulfillments.
func (f Fulfillment) Address() (AddressInfo, bool) {
	if f.address == nil {
		return AddressInfo{}, false
	}
	return *f.address, true
}

// Branch returns the pickup branch. The second return is false for delivery
// fulfillments.
func (f Fulfillment) Branch() (Branch, bool) {
	if f.branch == nil {
		return Branch{}, false
	}
	return *f.branch, true
}

// TimeSelection returns the chosen fulfillment time.
func (f Fulfillment) TimeSelection() TimeSelection {
	return f.timeSelection
}

// EstimatedTime returns the human-readable estimate shown on confirmation:
// the scheduled timestamp when one was chosen, the branch preparation
// estimate for immediate pickup, and the delivery band for immediate
// delivery.
func (f Fulfillment) EstimatedTime() string {
	if at, ok := f.timeSelection.ScheduledAt(); ok {
		return at.Format(time.RFC3339)
	}
	if f.branch != nil {
		return f.branch.PickupEstimate()
	}
	return DeliveryEstimateBand
}

// Summary returns a one-line description used on the order record.
func (f Fulfillment) Summary() (string, error) {
	switch f.fulfillmentType {
	case FulfillmentTypeDelivery:
		if f.address == nil {
			return "", errs.NewValueIsRequiredError("delivery address")
		}
		return fmt.Sprintf("Delivery to %s, %s", f.address.Area(), f.address.City()), nil
	case FulfillmentTypePickup:
		if f.branch == nil {
			return "", errs.NewValueIsRequiredError("pickup branch")
		}
		return fmt.Sprintf("Pickup from %s", f.branch.Name()), nil
	default:
		return "", f.fulfillmentType.Validate()
	}
}
