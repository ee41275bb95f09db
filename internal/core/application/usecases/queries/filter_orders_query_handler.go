package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// FilterOrdersQueryHandler retrieves the reduced, per-team order listing
// from the database. Only orders that carry at least one line item for
// the requested team are returned; the projection contains that team's
// items only.
type FilterOrdersQueryHandler struct {
	db *gorm.DB
}

// NewFilterOrdersQueryHandler creates a handler for filtered order listings.
func NewFilterOrdersQueryHandler(db *gorm.DB) FilterOrdersQueryHandler {
	return FilterOrdersQueryHandler{db: db}
}

// Handle executes the filtered listing, newest orders first.
func (h FilterOrdersQueryHandler) Handle(
	ctx context.Context,
	query FilterOrdersQuery,
) ([]FilteredOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("line_items.team = ?", query.Team().String()).
				Order("line_items.position")
		}).
		Preload("Items.Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("completion_entries.position")
		}).
		Where("status = ?", int(query.Filter().status())).
		Where("id IN (?)", h.db.Model(&lineItemRow{}).
			Select("order_id").
			Where("team = ?", query.Team().String())).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	orders := make([]FilteredOrderResponse, 0, len(rows))
	for _, row := range rows {
		items := make([]LineItemResponse, 0, len(row.Items))
		for _, itemRow := range row.Items {
			item, itemErr := toLineItemResponse(itemRow)
			if itemErr != nil {
				return nil, itemErr
			}
			items = append(items, item)
		}

		orders = append(orders, FilteredOrderResponse{
			OrderNumber:    row.OrderNumber,
			DispatcherName: row.DispatcherName,
			CustomerName:   row.CustomerName,
			Status:         order.Status(row.Status).String(),
			CreatedAt:      row.CreatedAt,
			Team:           query.Team().String(),
			Items:          items,
		})
	}

	return orders, nil
}
