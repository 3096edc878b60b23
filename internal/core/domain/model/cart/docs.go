// Package cart provides the shopping cart aggregate for the checkout system.
//
// The package includes:
//   - Cart: the aggregate root owning line items and their mutations
//   - Item: a line-item entity (product, unit price, quantity, note)
//   - Snapshot: an immutable copy of the cart taken for a checkout session
//
// Key business rules:
//   - Line items can only be mutated through Cart operations
//   - Adding an identical item (same product and note) merges quantities
//   - Quantities are always at least 1; updating a quantity to 0 removes the row
//   - The subtotal is recomputed from current items on every read, never cached
//
// All currency arithmetic goes through kernel.Money, so subtotals stay exact
// regardless of how many mutations the cart has seen.
package cart
