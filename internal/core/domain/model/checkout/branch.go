package checkout

import (
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// ErrBranchIsNotConstructed is returned when validating a zero-value Branch.
var ErrBranchIsNotConstructed = guard.ErrDefaultConstructorGuard

// Branch is a pickup location offered by the branch catalog. It carries the
// preparation estimate shown to the customer when pickup is chosen.
type Branch struct { //nolint:recvcheck //using for validation
	id             kernel.UUID
	name           string
	address        string
	phone          string
	pickupEstimate string
	guard          guard.ConstructorGuard
}

// NewBranch creates a validated pickup branch.
func NewBranch(id kernel.UUID, name, address, phone, pickupEstimate string) (Branch, error) {
	if err := id.Validate(); err != nil {
		return Branch{}, err
	}
	if name == "" {
		return Branch{}, errs.NewValueIsRequiredError("branch name")
	}
	if pickupEstimate == "" {
		return Branch{}, errs.NewValueIsRequiredError("branch pickup estimate")
	}

	return Branch{
		id:             id,
		name:           name,
		address:        address,
		phone:          phone,
		pickupEstimate: pickupEstimate,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Branch was created through NewBranch.
func (b Branch) Validate() error {
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

// ID returns the branch identifier.
func (b Branch) ID() kernel.UUID { return b.id }

// Name returns the branch display name.
func (b Branch) Name() string { return b.name }

// Address returns the branch street address.
func (b Branch) Address() string { return b.address }

// Phone returns the branch phone number.
func (b Branch) Phone() string { return b.phone }

// PickupEstimate returns the preparation estimate, e.g. "15-20 minutes".
func (b Branch) PickupEstimate() string { return b.pickupEstimate }
