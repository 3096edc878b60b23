// Package guard provides the ConstructorGuard pattern used by value objects,
// entities, commands, and queries throughout the checkout core. Embedding a
// guard in a struct makes zero-value instances detectable: only instances
// built through their designated constructor carry a constructed guard.
package guard

import "errors"

// ErrDefaultConstructorGuard is the fallback error returned by Validate
// when the caller does not supply its own sentinel.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero
// values. Constructors call NewConstructorGuard; Validate later reports
// whether the object went through a constructor.
//
// Example:
//
//	type ContactInfo struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewContactInfo(name string) (ContactInfo, error) {
//	    if name == "" {
//	        return ContactInfo{}, errors.New("name is required")
//	    }
//	    return ContactInfo{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ContactInfo) Validate() error {
//	    return c.guard.Validate(ErrContactInfoIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owning object was built through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
