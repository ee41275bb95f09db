package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by their
// business key and fulfillment status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns errs.ObjectAlreadyExistsError if the order number is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including its per-item completion history.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByNumber retrieves an order aggregate by its business key.
	// Returns errs.ObjectNotFoundError if no such order exists.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders in the given status, newest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
