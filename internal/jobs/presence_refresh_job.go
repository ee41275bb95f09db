package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// PresenceBroadcaster pushes scoped connected-users snapshots to every
// registered participant.
type PresenceBroadcaster interface {
	BroadcastPresence()
}

// PresenceRefreshJob periodically re-broadcasts presence snapshots so
// clients that missed a best-effort push converge on the current view.
type PresenceRefreshJob struct {
	broadcaster PresenceBroadcaster
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPresenceRefreshJob creates a job that refreshes presence every 30 seconds.
func NewPresenceRefreshJob(broadcaster PresenceBroadcaster, logger *slog.Logger) *PresenceRefreshJob {
	return &PresenceRefreshJob{
		broadcaster: broadcaster,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "presence_refresh_job"),
	}
}

// Start begins the presence refresh job.
func (j *PresenceRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.broadcaster.BroadcastPresence()
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence refresh job started (running every 30 seconds)")
	return nil
}

// Stop stops the presence refresh job.
func (j *PresenceRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Presence refresh job stopped")
}
