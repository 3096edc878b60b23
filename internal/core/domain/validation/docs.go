// Package validation holds the pure per-step input validators for the
// checkout flow. Each validator inspects raw input and returns a FieldErrors
// value mapping field names to human-readable messages; an empty result means
// the input is acceptable.
//
// Validators never mutate state and never touch I/O, which keeps them
// trivially testable and lets both the domain constructors and the HTTP
// adapter reuse the same rules.
package validation
