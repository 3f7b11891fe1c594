// Package websocket pushes refresh notices to connected dashboard
// clients so they re-fetch report views after an upload, filter change,
// or manual-entry save.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/aellis6/base-reports/internal/metrics"
	"github.com/rs/zerolog"
)

// RefreshNotice tells dashboard clients which part of the session
// changed and under which dataset.
type RefreshNotice struct {
	Type      string `json:"type"` // dataset, filters, incidents, poa, agentmap
	DatasetID string `json:"datasetId,omitempty"`
	At        string `json:"at"` // RFC3339
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound messages to fan out
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex to protect clients map
	mu sync.RWMutex

	// Logger
	logger zerolog.Logger
}

// NewHub creates a new Hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnect()
			h.logger.Info().
				Str("client_id", client.id).
				Int("total_clients", len(h.clients)).
				Msg("client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSDisconnect()
				h.logger.Info().
					Str("client_id", client.id).
					Int("total_clients", len(h.clients)).
					Msg("client disconnected")
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastRaw(message)
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// NotifyRefresh broadcasts a refresh notice of the given kind.
func (h *Hub) NotifyRefresh(kind, datasetID string) {
	notice := RefreshNotice{
		Type:      kind,
		DatasetID: datasetID,
		At:        time.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(notice)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal refresh notice")
		return
	}
	metrics.Get().RecordWSNotice()
	h.Broadcast(data)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcastRaw sends a raw message to all clients
func (h *Hub) broadcastRaw(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client's send buffer is full, close and remove it
			close(client.send)
			delete(h.clients, client)
			h.logger.Warn().
				Str("client_id", client.id).
				Msg("client send buffer full, closing connection")
		}
	}
}
