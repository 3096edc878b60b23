package commands

import (
	"context"
	"time"
)

// AbandonStaleSessionsCommandHandler garbage-collects idle checkout
// sessions. Sessions that refuse abandonment (consumed or with a
// submission in flight) are left alone.
type AbandonStaleSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
	now        func() time.Time
}

// NewAbandonStaleSessionsCommandHandler creates a handler for stale-session
// cleanup.
func NewAbandonStaleSessionsCommandHandler(uowFactory SessionUoWFactory) AbandonStaleSessionsCommandHandler {
	return AbandonStaleSessionsCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle removes every abandonable session idle past the timeout and
// returns how many were removed.
func (h AbandonStaleSessionsCommandHandler) Handle(ctx context.Context, command AbandonStaleSessionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	cutoff := h.now().Add(-command.IdleTimeout())
	sessions, err := sessionRepo.FindIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, session := range sessions {
		if session.Abandon() != nil {
			continue
		}
		if err = sessionRepo.Delete(ctx, session.ID()); err != nil {
			return 0, err
		}
		removed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
