// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a unique index; duplicate intakes surface as a
// constraint violation rather than a pre-check race.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber    string    `gorm:"uniqueIndex;not null"`
	DispatcherName string    `gorm:"not null"`
	CustomerName   string    `gorm:"not null"`
	Status         int       `gorm:"index"`
	CreatedAt      time.Time
	Items          []LineItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents a single line item row. Position preserves the
// intake ordering of items within a team. The tracking columns are only
// meaningful when Tracked is true.
type LineItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Team           string    `gorm:"type:varchar(16);not null"`
	Position       int       `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Quantity       int       `gorm:"not null"`
	Tracked        bool
	TotalCompleted int
	TrackingStatus int
	Entries        []CompletionEntryDTO `gorm:"foreignKey:LineItemID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for line item entities.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// CompletionEntryDTO represents one recorded progress report. The composite
// primary key (line item, position) keeps re-saves of the aggregate from
// duplicating history rows: existing positions upsert onto themselves.
type CompletionEntryDTO struct {
	LineItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	Qty        int       `gorm:"not null"`
	RecordedAt time.Time
}

// TableName specifies the database table name for completion entries.
func (CompletionEntryDTO) TableName() string {
	return "completion_entries"
}

// fromDomain converts an order domain aggregate to its database representation.
// Teams are walked in canonical order so item positions are stable across saves.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrderNumber:    aggregate.OrderNumber(),
		DispatcherName: aggregate.DispatcherName(),
		CustomerName:   aggregate.CustomerName(),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
	}

	for _, team := range aggregate.Teams() {
		for position, item := range aggregate.Items(team) {
			itemDTO := LineItemDTO{
				ID:       item.ID().Bytes(),
				OrderID:  dto.ID,
				Team:     team.String(),
				Position: position,
				Name:     item.Name(),
				Quantity: item.Quantity(),
			}

			if tracking := item.Tracking(); tracking != nil {
				itemDTO.Tracked = true
				itemDTO.TotalCompleted = tracking.TotalCompleted()
				itemDTO.TrackingStatus = int(tracking.Status())
				for entryPos, entry := range tracking.Entries() {
					itemDTO.Entries = append(itemDTO.Entries, CompletionEntryDTO{
						LineItemID: itemDTO.ID,
						Position:   entryPos,
						Qty:        entry.Qty,
						RecordedAt: entry.RecordedAt,
					})
				}
			}

			dto.Items = append(dto.Items, itemDTO)
		}
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Items and entries are expected preloaded and ordered by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	details := make(map[order.Team][]*order.LineItem)
	for _, itemDTO := range dto.Items {
		team, teamErr := order.TeamFromString(itemDTO.Team)
		if teamErr != nil {
			return nil, teamErr
		}

		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		var tracking *order.TeamTracking
		if itemDTO.Tracked {
			entries := make([]order.CompletionEntry, 0, len(itemDTO.Entries))
			for _, entryDTO := range itemDTO.Entries {
				entries = append(entries, order.CompletionEntry{
					Qty:        entryDTO.Qty,
					RecordedAt: entryDTO.RecordedAt,
				})
			}

			tracking, err = order.RestoreTeamTracking(itemDTO.TotalCompleted, entries, order.Status(itemDTO.TrackingStatus))
			if err != nil {
				return nil, err
			}
		}

		item, itemErr := order.RestoreLineItem(itemID, itemDTO.Name, itemDTO.Quantity, tracking)
		if itemErr != nil {
			return nil, itemErr
		}

		details[team] = append(details[team], item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.DispatcherName,
		dto.CustomerName,
		order.Status(dto.Status),
		details,
		dto.CreatedAt,
	)
}
