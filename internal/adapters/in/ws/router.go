package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/metrics"
	"fulfillment/internal/presence"
)

// deliveredStatus is the acknowledgment status for a relayed update.
const deliveredStatus = "delivered"

// Router dispatches inbound events, keeps the presence registry in sync
// with the connection lifecycle, and fans order changes out to the
// dispatcher scope. It is the realtime side of ports.OrderPublisher.
type Router struct {
	hub      *Hub
	registry *presence.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewRouter(hub *Hub, registry *presence.Registry, logger *slog.Logger, m *metrics.Metrics) *Router {
	return &Router{
		hub:      hub,
		registry: registry,
		logger:   logger,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// HandleMessage routes one inbound frame. Unknown events are logged and
// dropped.
func (r *Router) HandleMessage(client *Client, envelope inboundEnvelope) {
	switch envelope.Event {
	case EventRegister:
		r.handleRegister(client, envelope.Data)
	case EventOrderUpdate:
		r.handleOrderUpdate(client, envelope.Data)
	case EventPing:
		r.sendTo(client.ID(), EventPong, PongPayload{Timestamp: r.now()})
	default:
		r.logger.Warn("unknown event", "connectionId", client.ID(), "event", envelope.Event)
	}
}

// HandleDisconnect removes the connection's participant and, if one was
// registered, pushes fresh presence snapshots to everyone remaining.
func (r *Router) HandleDisconnect(client *Client) {
	participant, removed := r.registry.Unregister(client.ID())
	if !removed {
		return
	}

	r.logger.Info("participant left", "userId", participant.UserID, "role", participant.Role)
	r.BroadcastPresence()
}

// OrderCreated pushes a freshly created order to the dispatcher scope.
func (r *Router) OrderCreated(aggregate *order.Order) {
	r.broadcastToDispatchers(EventOrderCreated, orderToPayload(aggregate))
}

// OrderUpdated pushes the changed order to the dispatcher scope,
// annotated with who reported it.
func (r *Router) OrderUpdated(aggregate *order.Order, updatedBy string, team order.Team, skippedItemIDs []string) {
	r.broadcastToDispatchers(EventOrderUpdated, OrderUpdatedPayload{
		Order: orderToPayload(aggregate),
		Meta: OrderUpdateMeta{
			UpdatedBy: updatedBy,
			TeamType:  team.String(),
			Timestamp: r.now(),
		},
		SkippedItemIDs: skippedItemIDs,
	})
}

// BroadcastPresence sends every registered participant the snapshot
// their scope is entitled to see.
func (r *Router) BroadcastPresence() {
	dispatcherScope, teamScopes := r.registry.Snapshots()

	dispatcherMessage, err := json.Marshal(Envelope{Event: EventConnectedUsers, Data: snapshotToPayload(dispatcherScope)})
	if err != nil {
		r.logger.Error("marshal presence snapshot", "error", err)

		return
	}
	for _, p := range dispatcherScope.Dispatchers {
		r.hub.Send(p.ConnectionID, dispatcherMessage)
	}

	for team, snapshot := range teamScopes {
		teamMessage, err := json.Marshal(Envelope{Event: EventConnectedUsers, Data: snapshotToPayload(snapshot)})
		if err != nil {
			r.logger.Error("marshal presence snapshot", "team", team, "error", err)

			continue
		}
		for _, member := range snapshot.TeamMembers[team.String()] {
			r.hub.Send(member.ConnectionID, teamMessage)
		}
	}

	if r.metrics != nil {
		r.metrics.BroadcastsTotal.WithLabelValues(EventConnectedUsers).Inc()
	}
}

func (r *Router) handleRegister(client *Client, data json.RawMessage) {
	var payload RegisterPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.sendTo(client.ID(), EventRegisterRejected, RegisterRejectedPayload{Reason: "malformed register payload"})

		return
	}

	participant := presence.Participant{
		UserID:       payload.UserID,
		ConnectionID: client.ID(),
		Role:         presence.Role(payload.Role),
		Team:         order.Team(payload.Team),
	}

	if err := r.registry.Register(participant); err != nil {
		r.logger.Warn("registration rejected", "connectionId", client.ID(), "userId", payload.UserID, "error", err)
		r.sendTo(client.ID(), EventRegisterRejected, RegisterRejectedPayload{Reason: err.Error()})

		return
	}

	r.logger.Info("participant registered", "userId", participant.UserID, "role", participant.Role, "team", participant.Team)
	r.sendTo(client.ID(), EventRegistered, RegisteredPayload{Success: true})
	r.BroadcastPresence()
}

// handleOrderUpdate relays a client-reported order change to the
// dispatcher scope and acknowledges delivery to the sender only.
func (r *Router) handleOrderUpdate(client *Client, data json.RawMessage) {
	participant, ok := r.registry.ParticipantByConnection(client.ID())
	if !ok {
		r.logger.Warn("order update from unregistered connection", "connectionId", client.ID())

		return
	}

	var payload OrderUpdatePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.logger.Warn("malformed order update", "connectionId", client.ID(), "error", err)

		return
	}

	timestamp := payload.Timestamp
	if timestamp.IsZero() {
		timestamp = r.now()
	}

	r.broadcastToDispatchers(EventOrderUpdated, OrderUpdatedPayload{
		Order: payload.Order,
		Meta: OrderUpdateMeta{
			UpdatedBy: participant.UserID,
			TeamType:  payload.TeamType,
			Timestamp: timestamp,
		},
	})

	r.sendTo(client.ID(), EventOrderUpdateConfirmed, OrderUpdateConfirmedPayload{
		OrderID:   payload.Order.ID,
		Status:    deliveredStatus,
		Timestamp: r.now(),
	})
}

func (r *Router) broadcastToDispatchers(event string, data any) {
	message, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		r.logger.Error("marshal broadcast", "event", event, "error", err)

		return
	}

	dispatcherScope, _ := r.registry.Snapshots()
	for _, p := range dispatcherScope.Dispatchers {
		r.hub.Send(p.ConnectionID, message)
	}

	if r.metrics != nil {
		r.metrics.BroadcastsTotal.WithLabelValues(event).Inc()
	}
}

func (r *Router) sendTo(connectionID string, event string, data any) {
	message, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		r.logger.Error("marshal event", "event", event, "error", err)

		return
	}

	r.hub.Send(connectionID, message)
}
