// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the order tables directly through GORM and return
// flat response models shaped for the transport layer, bypassing the
// domain aggregate.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAllOrdersQueryIsNotConstructed = errors.New(
		"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
	)
)

// GetAllOrdersQuery retrieves every order in the system with its complete
// per-team breakdown, newest first.
//
// Example:
//
//	query := NewGetAllOrdersQuery()
//	handler := NewGetAllOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
// This is a parameterless query.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllOrdersQueryIsNotConstructed if validation fails.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// CompletionEntryResponse is one recorded progress report.
type CompletionEntryResponse struct {
	QtyCompleted int
	Timestamp    time.Time
}

// TrackingResponse is the production history of a line item.
// Absent (nil) when the item has never been reported on.
type TrackingResponse struct {
	TotalCompletedQty int
	Status            string
	Entries           []CompletionEntryResponse
}

// LineItemResponse is one line item with its optional tracking state.
type LineItemResponse struct {
	ID       kernel.UUID
	Name     string
	Quantity int
	Tracking *TrackingResponse
}

// OrderResponse is a full order projection: header fields plus the line
// items grouped by team name.
type OrderResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	DispatcherName string
	CustomerName   string
	Status         string
	CreatedAt      time.Time
	Details        map[string][]LineItemResponse
}
