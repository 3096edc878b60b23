package cart

import (
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

// ErrSnapshotIsNotConstructed is returned when validating a zero-value
// Snapshot.
var ErrSnapshotIsNotConstructed = guard.ErrDefaultConstructorGuard

// SnapshotItem is a value copy of a cart line at snapshot time.
type SnapshotItem struct {
	ProductID kernel.UUID
	UnitPrice kernel.Money
	Quantity  int
	Note      string
}

// Total returns the line total for the snapshot item.
func (s SnapshotItem) Total() (kernel.Money, error) {
	return s.UnitPrice.MulQuantity(s.Quantity)
}

// Snapshot is an immutable value object holding the cart contents a checkout
// session was started (or refreshed) with. It decouples the session from
// concurrent cart edits while still letting the step machine re-read the
// cart before submission.
type Snapshot struct { //nolint:recvcheck //using for validation
	items []SnapshotItem
	guard guard.ConstructorGuard
}

// NewSnapshot copies the given items into a snapshot. The items must be
// valid cart lines.
func NewSnapshot(items []*Item) (Snapshot, error) {
	copied := make([]SnapshotItem, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Snapshot{}, err
		}
		copied = append(copied, SnapshotItem{
			ProductID: item.ProductID(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}

	return Snapshot{items: copied, guard: guard.NewConstructorGuard()}, nil
}

// RestoreSnapshot reconstructs a snapshot from persisted session rows.
func RestoreSnapshot(items []SnapshotItem) (Snapshot, error) {
	for _, item := range items {
		if err := item.UnitPrice.Validate(); err != nil {
			return Snapshot{}, err
		}
		if err := item.ProductID.Validate(); err != nil {
			return Snapshot{}, err
		}
	}

	copied := make([]SnapshotItem, len(items))
	copy(copied, items)
	return Snapshot{items: copied, guard: guard.NewConstructorGuard()}, nil
}

// Validate checks that the Snapshot was created through a constructor.
func (s Snapshot) Validate() error {
	return s.guard.Validate(ErrSnapshotIsNotConstructed)
}

// Items returns a copy of the snapshot lines.
func (s Snapshot) Items() []SnapshotItem {
	items := make([]SnapshotItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsEmpty reports whether the snapshot holds no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.items) == 0
}

// Subtotal recomputes the exact sum over the snapshot lines.
func (s Snapshot) Subtotal() (kernel.Money, error) {
	subtotal := kernel.ZeroMoney()

	for _, item := range s.items {
		lineTotal, err := item.Total()
		if err != nil {
			return kernel.Money{}, err
		}

		subtotal, err = subtotal.Add(lineTotal)
		if err != nil {
			return kernel.Money{}, err
		}
	}

	return subtotal, nil
}
