package websocket

import (
	"sync"

	"github.com/bigcv/neo-livechat/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub is the live-connection registry, keyed by connection id. Connections
// never share state with each other; the hub exists for lifecycle accounting
// and operational visibility (how many widgets are live right now).
type Hub struct {
	// Registered clients map: ConnectionID -> Client
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Connection.Id] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"connection_id": client.Connection.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.Connection.Id]; ok {
				delete(h.clients, client.Connection.Id)
				client.close()
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"connection_id": client.Connection.Id})
			}
			h.mu.Unlock()
		}
	}
}

// ConnectionCount reports how many transports are currently live.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
