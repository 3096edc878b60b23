package catalog

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// StaticBranchCatalog serves the fixed list of pickup branches. The branch
// network changes rarely enough that a config-time list beats a table.
type StaticBranchCatalog struct {
	branches []checkout.Branch
}

// NewStaticBranchCatalog creates a catalog over the given branches.
func NewStaticBranchCatalog(branches []checkout.Branch) *StaticBranchCatalog {
	return &StaticBranchCatalog{branches: branches}
}

// NewDefaultBranchCatalog creates a catalog with the standard branch network.
func NewDefaultBranchCatalog() (*StaticBranchCatalog, error) {
	specs := []struct {
		id       string
		name     string
		address  string
		phone    string
		estimate string
	}{
		{
			id:       "5f0b3a52-8f2e-4c1d-9b3a-111111111111",
			name:     "Seef Mall",
			address:  "Seef District, Road 2819",
			phone:    "+973 17581111",
			estimate: "15-20 minutes",
		},
		{
			id:       "5f0b3a52-8f2e-4c1d-9b3a-222222222222",
			name:     "Manama Souq",
			address:  "Bab Al Bahrain Avenue",
			phone:    "+973 17225522",
			estimate: "10-15 minutes",
		},
		{
			id:       "5f0b3a52-8f2e-4c1d-9b3a-333333333333",
			name:     "Riffa Views",
			address:  "Sheikh Hamad Causeway",
			phone:    "+973 17760033",
			estimate: "20-25 minutes",
		},
	}

	branches := make([]checkout.Branch, 0, len(specs))
	for _, spec := range specs {
		id, err := kernel.UUIDFromString(spec.id)
		if err != nil {
			return nil, err
		}
		branch, err := checkout.NewBranch(id, spec.name, spec.address, spec.phone, spec.estimate)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	return NewStaticBranchCatalog(branches), nil
}

// All returns every branch available for pickup.
func (c *StaticBranchCatalog) All(_ context.Context) ([]checkout.Branch, error) {
	branches := make([]checkout.Branch, len(c.branches))
	copy(branches, c.branches)
	return branches, nil
}

// Get returns a branch by its identifier.
func (c *StaticBranchCatalog) Get(_ context.Context, id kernel.UUID) (checkout.Branch, error) {
	if err := id.Validate(); err != nil {
		return checkout.Branch{}, err
	}

	for _, branch := range c.branches {
		if branch.ID().IsEqual(id) {
			return branch, nil
		}
	}

	return checkout.Branch{}, errs.NewObjectNotFoundError("branch", id.String())
}
