package ws

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/presence"
)

// Wire events. Clients send register, order-update and ping; the server
// answers with registered / register-rejected, pushes connected-users,
// order-created, order-updated, and confirms relayed updates with
// order-update-confirmed.
const (
	EventRegister             = "register"
	EventRegistered           = "registered"
	EventRegisterRejected     = "register-rejected"
	EventConnectedUsers       = "connected-users"
	EventOrderCreated         = "order-created"
	EventOrderUpdate          = "order-update"
	EventOrderUpdated         = "order-updated"
	EventOrderUpdateConfirmed = "order-update-confirmed"
	EventPing                 = "ping"
	EventPong                 = "pong"
)

// Envelope is the frame shape for every message in both directions.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// RegisterPayload is the client's identification request.
type RegisterPayload struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Team   string `json:"team,omitempty"`
}

// RegisteredPayload acknowledges a successful registration.
type RegisteredPayload struct {
	Success bool `json:"success"`
}

// RegisterRejectedPayload tells the client why its registration was
// dropped instead of silently ignoring it.
type RegisterRejectedPayload struct {
	Reason string `json:"reason"`
}

// ParticipantPayload is one visible participant in a presence snapshot.
type ParticipantPayload struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Team   string `json:"team,omitempty"`
}

// PresencePayload is the scoped connected-users snapshot.
type PresencePayload struct {
	Dispatchers []ParticipantPayload            `json:"dispatchers"`
	TeamMembers map[string][]ParticipantPayload `json:"teamMembers"`
	Teams       []string                        `json:"teams"`
}

// OrderUpdatePayload is the client→server relay of a progress update.
type OrderUpdatePayload struct {
	Order     OrderPayload `json:"order"`
	TeamType  string       `json:"teamType"`
	Timestamp time.Time    `json:"timestamp"`
}

// OrderUpdateMeta identifies who reported the change the broadcast
// carries.
type OrderUpdateMeta struct {
	UpdatedBy string    `json:"updatedBy"`
	TeamType  string    `json:"teamType"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderUpdatedPayload is the dispatcher-scope broadcast of an order change.
type OrderUpdatedPayload struct {
	Order          OrderPayload    `json:"order"`
	Meta           OrderUpdateMeta `json:"_meta"`
	SkippedItemIDs []string        `json:"skipped_item_ids,omitempty"`
}

// OrderUpdateConfirmedPayload is the direct delivery acknowledgment for
// the originating connection only.
type OrderUpdateConfirmedPayload struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PongPayload answers an application-level ping with the server time.
type PongPayload struct {
	Timestamp time.Time `json:"timestamp"`
}

// TrackingPayload mirrors a line item's production history on the wire.
type TrackingPayload struct {
	TotalCompletedQty int                      `json:"total_completed_qty"`
	Status            string                   `json:"status"`
	CompletedEntries  []CompletionEntryPayload `json:"completed_entries"`
}

// CompletionEntryPayload is one recorded progress report.
type CompletionEntryPayload struct {
	QtyCompleted int       `json:"qty_completed"`
	Timestamp    time.Time `json:"timestamp"`
}

// LineItemPayload is one line item within an order payload.
type LineItemPayload struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Quantity     int              `json:"quantity"`
	TeamTracking *TrackingPayload `json:"team_tracking,omitempty"`
}

// OrderPayload is the full order shape pushed over the channel.
type OrderPayload struct {
	ID             string                       `json:"id"`
	OrderNumber    string                       `json:"order_number"`
	DispatcherName string                       `json:"dispatcher_name"`
	CustomerName   string                       `json:"customer_name"`
	OrderStatus    string                       `json:"order_status"`
	CreatedAt      time.Time                    `json:"created_at"`
	OrderDetails   map[string][]LineItemPayload `json:"order_details"`
}

// orderToPayload flattens the aggregate for the wire.
func orderToPayload(aggregate *order.Order) OrderPayload {
	payload := OrderPayload{
		ID:             aggregate.ID().String(),
		OrderNumber:    aggregate.OrderNumber(),
		DispatcherName: aggregate.DispatcherName(),
		CustomerName:   aggregate.CustomerName(),
		OrderStatus:    aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
		OrderDetails:   make(map[string][]LineItemPayload),
	}

	for _, team := range aggregate.Teams() {
		items := make([]LineItemPayload, 0, len(aggregate.Items(team)))
		for _, item := range aggregate.Items(team) {
			itemPayload := LineItemPayload{
				ID:       item.ID().String(),
				Name:     item.Name(),
				Quantity: item.Quantity(),
			}
			if tracking := item.Tracking(); tracking != nil {
				trackingPayload := &TrackingPayload{
					TotalCompletedQty: tracking.TotalCompleted(),
					Status:            tracking.Status().String(),
					CompletedEntries:  make([]CompletionEntryPayload, 0, len(tracking.Entries())),
				}
				for _, entry := range tracking.Entries() {
					trackingPayload.CompletedEntries = append(trackingPayload.CompletedEntries, CompletionEntryPayload{
						QtyCompleted: entry.Qty,
						Timestamp:    entry.RecordedAt,
					})
				}
				itemPayload.TeamTracking = trackingPayload
			}
			items = append(items, itemPayload)
		}
		payload.OrderDetails[team.String()] = items
	}

	return payload
}

// snapshotToPayload flattens a scoped presence snapshot for the wire.
func snapshotToPayload(snapshot presence.Snapshot) PresencePayload {
	payload := PresencePayload{
		Dispatchers: make([]ParticipantPayload, 0, len(snapshot.Dispatchers)),
		TeamMembers: make(map[string][]ParticipantPayload, len(snapshot.TeamMembers)),
		Teams:       snapshot.Teams,
	}
	if payload.Teams == nil {
		payload.Teams = []string{}
	}

	for _, p := range snapshot.Dispatchers {
		payload.Dispatchers = append(payload.Dispatchers, participantToPayload(p))
	}
	for team, members := range snapshot.TeamMembers {
		memberPayloads := make([]ParticipantPayload, 0, len(members))
		for _, p := range members {
			memberPayloads = append(memberPayloads, participantToPayload(p))
		}
		payload.TeamMembers[team] = memberPayloads
	}

	return payload
}

func participantToPayload(p presence.Participant) ParticipantPayload {
	return ParticipantPayload{
		UserID: p.UserID,
		Role:   p.Role.String(),
		Team:   p.Team.String(),
	}
}
