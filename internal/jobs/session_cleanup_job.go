package jobs

import (
	"context"
	"log/slog"
	"time"

	"checkout/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionCleanupJob periodically abandons checkout sessions that have been
// idle past the configured timeout. Consumed sessions and sessions with a
// submission in flight are skipped by the handler.
type SessionCleanupJob struct {
	handler     commands.AbandonStaleSessionsCommandHandler
	cron        *cron.Cron
	schedule    string
	idleTimeout time.Duration
	logger      *slog.Logger
}

// NewSessionCleanupJob creates a cleanup job. The schedule is a standard
// five-field cron expression; idleTimeout is how long a session may sit
// untouched before it is abandoned.
func NewSessionCleanupJob(
	handler commands.AbandonStaleSessionsCommandHandler,
	schedule string,
	idleTimeout time.Duration,
	logger *slog.Logger,
) *SessionCleanupJob {
	return &SessionCleanupJob{
		handler:     handler,
		cron:        cron.New(),
		schedule:    schedule,
		idleTimeout: idleTimeout,
		logger:      logger.With("component", "session_cleanup_job"),
	}
}

// Start schedules the cleanup job.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewAbandonStaleSessionsCommand(j.idleTimeout)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job misconfigured", "error", err)
			return
		}

		removed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", err)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Abandoned stale checkout sessions", "count", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started", "schedule", j.schedule)
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
