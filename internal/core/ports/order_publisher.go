package ports

import (
	"fulfillment/internal/core/domain/model/order"
)

// OrderPublisher notifies interested parties about order state changes.
// Implementations fan the event out to connected realtime clients; they
// must not block the caller and are invoked only after the change has
// been committed.
type OrderPublisher interface {
	// OrderCreated announces a newly placed order.
	OrderCreated(aggregate *order.Order)

	// OrderUpdated announces recorded progress on an order.
	// updatedBy and team identify the reporter; skippedItemIDs lists
	// batch entries that matched no line item of the team.
	OrderUpdated(aggregate *order.Order, updatedBy string, team order.Team, skippedItemIDs []string)
}
