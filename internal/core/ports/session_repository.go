package ports

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// SessionRepository defines the persistence contract for checkout session
// aggregates.
type SessionRepository interface {
	// Add persists a new session aggregate to storage.
	Add(ctx context.Context, aggregate *checkout.Session) error

	// Update persists changes to an existing session aggregate. The
	// submission status must be written through here before any external
	// submission attempt, so a concurrent submit sees the in-flight lock.
	Update(ctx context.Context, aggregate *checkout.Session) error

	// Get retrieves a session aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error)

	// FindIdleSince retrieves non-consumed sessions whose last change is
	// older than the cutoff. Used by the stale-session cleanup job.
	FindIdleSince(ctx context.Context, cutoff time.Time) ([]*checkout.Session, error)

	// Delete removes a session (and its idempotency token) from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
