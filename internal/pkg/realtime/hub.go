// Package realtime pushes full-collection snapshots to connected
// clients over WebSocket. Every mutation rebuilds the affected
// collection and broadcasts it whole; clients replace local state on
// receipt instead of patching it.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotMessage carries one full collection to the clients.
type SnapshotMessage struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	Documents  any       `json:"documents"`
	Timestamp  time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and fans snapshots out to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Channel for snapshots to broadcast
	broadcast chan *SnapshotMessage

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Last encoded snapshot per collection, replayed to new clients
	snapshots   map[string][]byte
	snapshotsMu sync.RWMutex

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *SnapshotMessage, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		snapshots:  make(map[string][]byte),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastSnapshot(message)
		}
	}
}

// registerClient adds a client and replays the cached snapshots so the
// client starts from current state without waiting for a mutation.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.snapshotsMu.RLock()
	for _, data := range h.snapshots {
		select {
		case client.send <- data:
		default:
		}
	}
	h.snapshotsMu.RUnlock()

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Realtime client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Str("userID", client.userID).
			Str("addr", client.conn.RemoteAddr().String()).
			Msg("Realtime client unregistered")
	}
}

func (h *Hub) broadcastSnapshot(message *SnapshotMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("collection", message.Collection).
			Msg("Failed to marshal snapshot for broadcast")
		return
	}

	h.snapshotsMu.Lock()
	h.snapshots[message.Collection] = data
	h.snapshotsMu.Unlock()

	h.mu.RLock()
	var dropped []*Client
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they might be slow or
			// disconnected. Queueing on the unregister channel would
			// block this loop against itself, so drop them inline.
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("collection", message.Collection).
		Int("clientCount", h.ClientCount()).
		Msg("Snapshot broadcasted")
}

// Broadcast queues a snapshot for delivery to all connected clients.
func (h *Hub) Broadcast(collection string, documents any) {
	h.broadcast <- &SnapshotMessage{
		Type:       "snapshot",
		Collection: collection,
		Documents:  documents,
		Timestamp:  time.Now(),
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
