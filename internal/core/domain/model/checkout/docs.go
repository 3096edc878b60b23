// Package checkout models one customer's walk through the checkout flow.
//
// The package includes:
//   - Session: the aggregate root owning the step state machine, captured
//     per-step data, the cart snapshot, and the idempotency token
//   - Step: the mostly linear flow with one branch (address vs branch)
//   - FulfillmentType, Fulfillment, AddressInfo, Branch, TimeSelection:
//     the fulfillment-phase value objects
//   - ContactInfo, PaymentSelection, Card: the other per-step payloads
//   - SubmissionStatus: the exactly-one-order-per-session guard
//
// Key business rules:
//   - Steps advance only through the matching Submit method
//   - Backward navigation retains data; switching the fulfillment type
//     discards only the type-specific payload
//   - The idempotency token is minted once per session and reused for
//     every submission attempt
//   - A consumed session refuses all further operations
package checkout
