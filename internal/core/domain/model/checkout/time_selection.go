package checkout

import (
	"errors"
	"time"

	"checkout/internal/pkg/guard"
)

// MinimumScheduleLead is how far in the future a scheduled fulfillment time
// must be. The kitchen needs the lead time to prepare the order.
const MinimumScheduleLead = 30 * time.Minute

var (
	// ErrInvalidScheduleTime is returned when a scheduled fulfillment time
	// is in the past or closer than MinimumScheduleLead.
	ErrInvalidScheduleTime = errors.New("scheduled time must be at least 30 minutes from now")

	// ErrTimeSelectionIsNotConstructed is returned when validating a
	// zero-value TimeSelection.
	ErrTimeSelectionIsNotConstructed = guard.ErrDefaultConstructorGuard
)

// TimeSelection chooses when the order should be fulfilled: as soon as
// possible, or at a scheduled future time.
type TimeSelection struct { //nolint:recvcheck //using for validation
	scheduledAt *time.Time
	guard       guard.ConstructorGuard
}

// ImmediateTime selects fulfillment as soon as possible.
func ImmediateTime() TimeSelection {
	return TimeSelection{guard: guard.NewConstructorGuard()}
}

// NewScheduledTime selects fulfillment at a future time. The time must be
// at least MinimumScheduleLead after now.
func NewScheduledTime(at time.Time, now time.Time) (TimeSelection, error) {
	if at.Before(now.Add(MinimumScheduleLead)) {
		return TimeSelection{}, ErrInvalidScheduleTime
	}

	at = at.UTC()
	return TimeSelection{scheduledAt: &at, guard: guard.NewConstructorGuard()}, nil
}

// RestoreScheduledTime reconstructs a scheduled selection from persistence
// without re-checking the lead time, which was enforced at capture.
func RestoreScheduledTime(at time.Time) TimeSelection {
	at = at.UTC()
	return TimeSelection{scheduledAt: &at, guard: guard.NewConstructorGuard()}
}

// Validate checks that the TimeSelection was created through a constructor.
func (t TimeSelection) Validate() error {
	return t.guard.Validate(ErrTimeSelectionIsNotConstructed)
}

// IsImmediate reports whether fulfillment should happen as soon as possible.
func (t TimeSelection) IsImmediate() bool {
	return t.scheduledAt == nil
}

// ScheduledAt returns the scheduled time when the selection is scheduled.
func (t TimeSelection) ScheduledAt() (time.Time, bool) {
	if t.scheduledAt == nil {
		return time.Time{}, false
	}
	return *t.scheduledAt, true
}
