package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Read models over the order tables. These deliberately bypass the domain
// aggregate: queries need no invariants, only a faithful projection.

type orderRow struct {
	ID             uuid.UUID
	OrderNumber    string
	DispatcherName string
	CustomerName   string
	Status         int
	CreatedAt      time.Time
	Items          []lineItemRow `gorm:"foreignKey:OrderID;references:ID"`
}

func (orderRow) TableName() string { return "orders" }

type lineItemRow struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	Team           string
	Position       int
	Name           string
	Quantity       int
	Tracked        bool
	TotalCompleted int
	TrackingStatus int
	Entries        []completionEntryRow `gorm:"foreignKey:LineItemID;references:ID"`
}

func (lineItemRow) TableName() string { return "line_items" }

type completionEntryRow struct {
	LineItemID uuid.UUID
	Position   int
	Qty        int
	RecordedAt time.Time
}

func (completionEntryRow) TableName() string { return "completion_entries" }

// withItems preloads line items and their completion history in stable order.
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_items.team, line_items.position")
		}).
		Preload("Items.Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("completion_entries.position")
		})
}

func toLineItemResponse(row lineItemRow) (LineItemResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return LineItemResponse{}, err
	}

	item := LineItemResponse{
		ID:       id,
		Name:     row.Name,
		Quantity: row.Quantity,
	}

	if row.Tracked {
		tracking := &TrackingResponse{
			TotalCompletedQty: row.TotalCompleted,
			Status:            order.Status(row.TrackingStatus).String(),
			Entries:           make([]CompletionEntryResponse, 0, len(row.Entries)),
		}
		for _, entry := range row.Entries {
			tracking.Entries = append(tracking.Entries, CompletionEntryResponse{
				QtyCompleted: entry.Qty,
				Timestamp:    entry.RecordedAt,
			})
		}
		item.Tracking = tracking
	}

	return item, nil
}

func toOrderResponse(row orderRow) (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{
		ID:             id,
		OrderNumber:    row.OrderNumber,
		DispatcherName: row.DispatcherName,
		CustomerName:   row.CustomerName,
		Status:         order.Status(row.Status).String(),
		CreatedAt:      row.CreatedAt,
		Details:        make(map[string][]LineItemResponse),
	}

	for _, itemRow := range row.Items {
		item, itemErr := toLineItemResponse(itemRow)
		if itemErr != nil {
			return OrderResponse{}, itemErr
		}
		resp.Details[itemRow.Team] = append(resp.Details[itemRow.Team], item)
	}

	return resp, nil
}
