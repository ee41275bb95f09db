package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	presenceRefreshJob *PresenceRefreshJob
	orderDigestJob     *OrderDigestJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	broadcaster PresenceBroadcaster,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		presenceRefreshJob: NewPresenceRefreshJob(broadcaster, logger),
		orderDigestJob:     NewOrderDigestJob(getAllOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.presenceRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start presence refresh job: %w", err)
	}

	if err := jm.orderDigestJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.presenceRefreshJob.Stop()
		return fmt.Errorf("failed to start order digest job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderDigestJob.Stop()
	jm.presenceRefreshJob.Stop()
}
