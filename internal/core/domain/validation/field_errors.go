package validation

import (
	"sort"
	"strings"
)

// FieldErrors maps an input field name to a validation message. It is a
// plain value, safe to copy and compare, and doubles as an error so command
// handlers can return it up the stack unchanged.
type FieldErrors map[string]string

// Error renders the field errors in deterministic field order.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation passed"
	}

	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("validation failed: ")
	for i, field := range fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(fe[field])
	}
	return sb.String()
}

// IsEmpty reports whether the input passed validation.
func (fe FieldErrors) IsEmpty() bool {
	return len(fe) == 0
}

// AsError returns the FieldErrors as an error, or nil when empty. Handlers
// use it to convert a validator result into a return value.
func (fe FieldErrors) AsError() error {
	if fe.IsEmpty() {
		return nil
	}
	return fe
}
