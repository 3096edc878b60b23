// Package jobs provides scheduled background tasks for the checkout service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance required by the checkout flow.
//
// # Available Jobs
//
// 1. SessionCleanupJob - Abandons checkout sessions that have been idle past
// the configured timeout, releasing their cart snapshots.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(abandonStaleHandler, "*/5 * * * *", 30*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Sessions that refuse abandonment (consumed, submission in flight) are
// skipped, not treated as errors
// - Failed runs are logged and retried on the next tick
package jobs
