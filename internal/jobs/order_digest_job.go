package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OrderDigestJob periodically logs how many orders are live versus
// completed. The digest is the operational heartbeat of the tracker.
type OrderDigestJob struct {
	handler queries.GetAllOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderDigestJob creates a job that logs the order book summary every minute.
func NewOrderDigestJob(handler queries.GetAllOrdersQueryHandler, logger *slog.Logger) *OrderDigestJob {
	return &OrderDigestJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_digest_job"),
	}
}

// Start begins the order digest job.
func (j *OrderDigestJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		orders, err := j.handler.Handle(ctx, queries.NewGetAllOrdersQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Order digest job failed", "error", err)
			return
		}

		live, completed := 0, 0
		for _, o := range orders {
			if o.Status == "Completed" {
				completed++
			} else {
				live++
			}
		}

		j.logger.InfoContext(ctx, "Order book digest", "live", live, "completed", completed)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order digest job started (running every minute)")
	return nil
}

// Stop stops the order digest job.
func (j *OrderDigestJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order digest job stopped")
}
