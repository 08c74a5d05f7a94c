// Package realtime pushes table status changes to connected websocket clients.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"resto-backend/internal/metrics"
	"resto-backend/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 5 * time.Second
	broadcastBuf = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans table events out to every connected client. A client whose write
// fails is dropped.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan models.TableEvent
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.TableEvent, broadcastBuf),
		logger:    logger,
	}
}

// Run delivers queued events until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

func (h *Hub) deliver(ev models.TableEvent) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(ev); err != nil {
			h.logger.Debug("dropping realtime client", zap.Error(err))
			client.Close()
			delete(h.clients, client)
		}
	}
	metrics.RealtimeClients.Set(float64(len(h.clients)))
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
	metrics.RealtimeClients.Set(0)
}

// Publish queues an event. It never blocks a request; when the queue is full
// the event is dropped and clients catch up on their next table fetch.
func (h *Hub) Publish(ev models.TableEvent) {
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("realtime queue full, event dropped", zap.String("type", ev.Type))
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the client registered until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	metrics.RealtimeClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			metrics.RealtimeClients.Set(float64(len(h.clients)))
			h.clientsMux.Unlock()
			return
		}
	}
}
