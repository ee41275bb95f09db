package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

// Error is the body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderItem is one requested line item.
type CreateOrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	OrderNumber    string                       `json:"order_number"`
	DispatcherName string                       `json:"dispatcher_name"`
	CustomerName   string                       `json:"customer_name"`
	OrderDetails   map[string][]CreateOrderItem `json:"order_details"`
}

// ProgressItem is one reported completion within a batch.
type ProgressItem struct {
	ItemID       string `json:"item_id"`
	QtyCompleted int    `json:"qty_completed"`
}

// UpdateProgressRequest is the body of PATCH /orders/update-progress.
type UpdateProgressRequest struct {
	OrderNumber string         `json:"order_number"`
	TeamType    string         `json:"team_type"`
	UpdatedBy   string         `json:"updated_by"`
	Updates     []ProgressItem `json:"updates"`
}

// UpdateProgressResponse returns the updated order together with the
// item IDs the batch referenced but the team could not act on.
type UpdateProgressResponse struct {
	Order          Order    `json:"order"`
	SkippedItemIDs []string `json:"skipped_item_ids"`
}

// CompletionEntry is one recorded progress report.
type CompletionEntry struct {
	QtyCompleted int       `json:"qty_completed"`
	Timestamp    time.Time `json:"timestamp"`
}

// Tracking is a line item's production history. Absent until the item's
// team reports on it for the first time.
type Tracking struct {
	TotalCompletedQty int               `json:"total_completed_qty"`
	Status            string            `json:"status"`
	CompletedEntries  []CompletionEntry `json:"completed_entries"`
}

// LineItem is one order line item with its optional tracking state.
type LineItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	TeamTracking *Tracking `json:"team_tracking,omitempty"`
}

// Order is the full order representation: header fields plus the line
// items grouped by team name.
type Order struct {
	ID             string                `json:"id"`
	OrderNumber    string                `json:"order_number"`
	DispatcherName string                `json:"dispatcher_name"`
	CustomerName   string                `json:"customer_name"`
	OrderStatus    string                `json:"order_status"`
	CreatedAt      time.Time             `json:"created_at"`
	OrderDetails   map[string][]LineItem `json:"order_details"`
}

// FilteredOrder is the reduced representation returned by team-scoped
// listings: header fields plus only the requested team's items.
type FilteredOrder struct {
	OrderNumber    string     `json:"order_number"`
	DispatcherName string     `json:"dispatcher_name"`
	CustomerName   string     `json:"customer_name"`
	OrderStatus    string     `json:"order_status"`
	CreatedAt      time.Time  `json:"created_at"`
	Team           string     `json:"team"`
	Items          []LineItem `json:"items"`
}

func orderFromDomain(aggregate *order.Order) Order {
	response := Order{
		ID:             aggregate.ID().String(),
		OrderNumber:    aggregate.OrderNumber(),
		DispatcherName: aggregate.DispatcherName(),
		CustomerName:   aggregate.CustomerName(),
		OrderStatus:    aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
		OrderDetails:   make(map[string][]LineItem),
	}

	for _, team := range aggregate.Teams() {
		items := make([]LineItem, 0, len(aggregate.Items(team)))
		for _, item := range aggregate.Items(team) {
			lineItem := LineItem{
				ID:       item.ID().String(),
				Name:     item.Name(),
				Quantity: item.Quantity(),
			}
			if tracking := item.Tracking(); tracking != nil {
				lineItem.TeamTracking = &Tracking{
					TotalCompletedQty: tracking.TotalCompleted(),
					Status:            tracking.Status().String(),
					CompletedEntries:  make([]CompletionEntry, 0, len(tracking.Entries())),
				}
				for _, entry := range tracking.Entries() {
					lineItem.TeamTracking.CompletedEntries = append(lineItem.TeamTracking.CompletedEntries, CompletionEntry{
						QtyCompleted: entry.Qty,
						Timestamp:    entry.RecordedAt,
					})
				}
			}
			items = append(items, lineItem)
		}
		response.OrderDetails[team.String()] = items
	}

	return response
}

func orderFromProjection(projection queries.OrderResponse) Order {
	response := Order{
		ID:             projection.ID.String(),
		OrderNumber:    projection.OrderNumber,
		DispatcherName: projection.DispatcherName,
		CustomerName:   projection.CustomerName,
		OrderStatus:    projection.Status,
		CreatedAt:      projection.CreatedAt,
		OrderDetails:   make(map[string][]LineItem, len(projection.Details)),
	}

	for team, items := range projection.Details {
		response.OrderDetails[team] = lineItemsFromProjection(items)
	}

	return response
}

func filteredOrderFromProjection(projection queries.FilteredOrderResponse) FilteredOrder {
	return FilteredOrder{
		OrderNumber:    projection.OrderNumber,
		DispatcherName: projection.DispatcherName,
		CustomerName:   projection.CustomerName,
		OrderStatus:    projection.Status,
		CreatedAt:      projection.CreatedAt,
		Team:           projection.Team,
		Items:          lineItemsFromProjection(projection.Items),
	}
}

func lineItemsFromProjection(items []queries.LineItemResponse) []LineItem {
	result := make([]LineItem, 0, len(items))
	for _, item := range items {
		lineItem := LineItem{
			ID:       item.ID.String(),
			Name:     item.Name,
			Quantity: item.Quantity,
		}
		if item.Tracking != nil {
			tracking := &Tracking{
				TotalCompletedQty: item.Tracking.TotalCompletedQty,
				Status:            item.Tracking.Status,
				CompletedEntries:  make([]CompletionEntry, 0, len(item.Tracking.Entries)),
			}
			for _, entry := range item.Tracking.Entries {
				tracking.CompletedEntries = append(tracking.CompletedEntries, CompletionEntry{
					QtyCompleted: entry.QtyCompleted,
					Timestamp:    entry.Timestamp,
				})
			}
			lineItem.TeamTracking = tracking
		}
		result = append(result, lineItem)
	}

	return result
}
