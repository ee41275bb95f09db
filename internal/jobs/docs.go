// Package jobs provides scheduled background tasks for the fulfillment tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order tracking service.
//
// # Available Jobs
//
// 1. PresenceRefreshJob - Runs every 30 seconds to re-broadcast connected-users snapshots
// 2. OrderDigestJob - Runs every minute to log the live/completed order counts
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(router, getAllOrdersHandler, logger)
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
// - Presence refresh delegates to the broadcast router; sends are best effort
// - Digest job logs query failures and skips the cycle
// - Failed job starts will stop any already running jobs
package jobs
