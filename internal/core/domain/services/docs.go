// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the checkout system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderFactory: A domain service that derives the order record from a
//     completed checkout session
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
