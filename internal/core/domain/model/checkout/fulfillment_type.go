package checkout

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// FulfillmentType selects how the order reaches the customer: delivered to
// an address or picked up at a branch. The type chooses which
// fulfillment-phase step the checkout flow shows.
type FulfillmentType int

const (
	// FulfillmentTypeUnknown represents an invalid or undefined type.
	FulfillmentTypeUnknown FulfillmentType = iota

	// FulfillmentTypeDelivery delivers the order to a customer address.
	// This is the default for new checkout sessions.
	FulfillmentTypeDelivery

	// FulfillmentTypePickup has the customer collect the order at a branch.
	FulfillmentTypePickup
)

func getFulfillmentTypeStrings() map[FulfillmentType]string {
	return map[FulfillmentType]string{
		FulfillmentTypeUnknown:  "Unknown",
		FulfillmentTypeDelivery: "Delivery",
		FulfillmentTypePickup:   "Pickup",
	}
}

func getValidFulfillmentTypeStrings() map[FulfillmentType]string {
	//nolint:exhaustive // FulfillmentTypeUnknown is intentionally excluded as it's invalid
	return map[FulfillmentType]string{
		FulfillmentTypeDelivery: "Delivery",
		FulfillmentTypePickup:   "Pickup",
	}
}

// FulfillmentTypeFromString parses a persisted or transported type name.
func FulfillmentTypeFromString(s string) (FulfillmentType, error) {
	for ft, str := range getValidFulfillmentTypeStrings() {
		if str == s {
			return ft, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"fulfillment type is invalid",
		fmt.Errorf("%q is not a valid fulfillment type", s),
	)
}

// Validate checks if the FulfillmentType value is valid.
func (f FulfillmentType) Validate() error {
	if _, ok := getValidFulfillmentTypeStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillment type is invalid",
			fmt.Errorf("%d is not a valid fulfillment type", f),
		)
	}
	return nil
}

// String returns the human-readable name of the fulfillment type.
func (f FulfillmentType) String() string {
	if str, ok := getFulfillmentTypeStrings()[f]; ok {
		return str
	}
	return "Unknown"
}
