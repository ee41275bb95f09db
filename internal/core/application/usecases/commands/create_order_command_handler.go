package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the aggregate with fresh line item identifiers, persists it in a
// transaction and announces the new order to connected clients after commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and an
// OrderPublisher for post-commit notification.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Line items are assigned fresh identifiers; the order starts in Pending
// status with no recorded progress. Returns the created aggregate so callers
// can echo it back, including the generated item identifiers.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	details := make(map[order.Team][]*order.LineItem, len(cmd.Details()))
	for team, items := range cmd.Details() {
		lineItems := make([]*order.LineItem, 0, len(items))
		for _, item := range items {
			lineItem, err := order.NewLineItem(kernel.NewUUID(), item.Name, item.Quantity)
			if err != nil {
				return nil, err
			}
			lineItems = append(lineItems, lineItem)
		}
		details[team] = lineItems
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.OrderNumber(),
		cmd.DispatcherName(),
		cmd.CustomerName(),
		details,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		h.publisher.OrderCreated(aggregate)
	}

	return aggregate, nil
}
