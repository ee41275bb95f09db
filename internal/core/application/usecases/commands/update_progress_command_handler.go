package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/keylock"
)

// UpdateProgressResult is the outcome of a successfully handled progress
// batch. SkippedItemIDs lists batch entries that resolved to no line item
// of the reporting team; the rest of the batch was applied.
type UpdateProgressResult struct {
	Order          *order.Order
	SkippedItemIDs []string
}

// UpdateProgressCommandHandler applies one team's completion batch to an
// order. Batches against the same order are serialized through a keyed
// mutex so concurrent reports cannot interleave their read-modify-write
// cycles; batches against different orders proceed in parallel.
type UpdateProgressCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
	locks      *keylock.KeyedMutex
	logger     *slog.Logger
}

// NewUpdateProgressCommandHandler creates a handler for progress reporting.
func NewUpdateProgressCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderPublisher,
	locks *keylock.KeyedMutex,
	logger *slog.Logger,
) UpdateProgressCommandHandler {
	return UpdateProgressCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		locks:      locks,
		logger:     logger,
	}
}

// Handle processes a progress batch.
//
// The order is loaded by its business key, the batch is applied atomically
// through the aggregate, and the updated aggregate is persisted in the same
// transaction. Item IDs that are malformed or belong to no line item of the
// reporting team are collected as skipped and logged; they do not fail the
// batch. A quantity that exceeds an item's outstanding amount fails the
// whole batch and nothing is persisted.
//
// After a successful commit the updated order is announced through the
// publisher together with the reporter's identity. A batch that applied
// nothing (every item skipped) commits quietly without an announcement.
func (h *UpdateProgressCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateProgressCommand,
) (UpdateProgressResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateProgressResult{}, err
	}

	h.locks.Lock(cmd.OrderNumber())
	defer h.locks.Unlock(cmd.OrderNumber())

	updates := make([]order.ProgressUpdate, 0, len(cmd.Items()))
	var skipped []string
	for _, item := range cmd.Items() {
		itemID, err := kernel.UUIDFromString(item.ItemID)
		if err != nil {
			skipped = append(skipped, item.ItemID)
			continue
		}
		updates = append(updates, order.ProgressUpdate{ItemID: itemID, Qty: item.QtyCompleted})
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateProgressResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return UpdateProgressResult{}, err
	}

	applied := false
	if len(updates) > 0 {
		skippedIDs, err := aggregate.ApplyProgress(cmd.Team(), updates, time.Now().UTC())
		if err != nil {
			return UpdateProgressResult{}, err
		}
		for _, id := range skippedIDs {
			skipped = append(skipped, id.String())
		}
		applied = len(updates) > len(skippedIDs)

		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return UpdateProgressResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateProgressResult{}, err
	}

	if len(skipped) > 0 {
		h.logger.Warn("progress batch contained unknown items",
			"orderNumber", cmd.OrderNumber(),
			"team", cmd.Team().String(),
			"skippedItemIds", skipped)
	}

	if h.publisher != nil && applied {
		h.publisher.OrderUpdated(aggregate, cmd.UpdatedBy(), cmd.Team(), skipped)
	}

	return UpdateProgressResult{Order: aggregate, SkippedItemIDs: skipped}, nil
}
