// Package kernel provides core domain primitives shared by the checkout
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers and idempotency tokens
//   - Money: an exact decimal value object for three-decimal currency amounts
//
// These primitives are immutable and validate themselves on construction, so
// the aggregates built on top of them can rely on their invariants without
// re-checking. Money performs all arithmetic on exact decimals; formatting to
// the three-decimal display form happens only at the presentation boundary.
package kernel
