package ws

import (
	"log/slog"
	"sync"

	"fulfillment/internal/pkg/metrics"
)

// Hub tracks live connections and fans messages out to them. Sends are
// best effort: a client whose buffer is full misses the message rather
// than stalling the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHub(logger *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
		metrics: m,
	}
}

func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	h.clients[client.ID()] = client
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ConnectedClients.Set(float64(count))
	}
	h.logger.Info("client connected", "connectionId", client.ID(), "totalClients", count)
}

// Remove drops the client and closes its send channel, which stops the
// write pump. Safe to call more than once for the same client.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.ID()]
	if !ok || current != client {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID())
	count := len(h.clients)
	h.mu.Unlock()

	close(client.send)

	if h.metrics != nil {
		h.metrics.ConnectedClients.Set(float64(count))
	}
	h.logger.Info("client disconnected", "connectionId", client.ID(), "totalClients", count)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Send queues a message for one connection without blocking. Returns
// false when the client is gone or its buffer is full.
//
// The read lock is held across the channel send so Remove cannot close
// the channel between the lookup and the send.
func (h *Hub) Send(connectionID string, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connectionID]
	if !ok {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		if h.metrics != nil {
			h.metrics.DroppedSends.Inc()
		}
		h.logger.Warn("send buffer full, dropping message", "connectionId", connectionID)

		return false
	}
}
