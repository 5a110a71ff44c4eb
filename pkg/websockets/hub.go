package websockets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultWriteTimeout bounds a single write to a local socket.
const DefaultWriteTimeout = 5 * time.Second

// Hub keeps the sockets opened against the local development server and
// broadcasts messages to them. Writes are serialized per hub and each one is
// bounded by WriteTimeout, so a client that stops reading cannot stall the
// caller.
type Hub struct {
	WriteTimeout time.Duration

	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		WriteTimeout: DefaultWriteTimeout,
		conns:        make(map[string]*websocket.Conn),
	}
}

// Make sure we conform to the interface
var _ Publisher = (*Hub)(nil)

// Register starts delivering messages to conn under connectionID.
func (h *Hub) Register(connectionID string, conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[connectionID] = conn
	h.mu.Unlock()
}

// Unregister stops delivering to connectionID. It does not close the socket.
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	delete(h.conns, connectionID)
	h.mu.Unlock()
}

// Len returns the number of registered sockets.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish writes message to every registered socket. A socket that fails or
// times out a write is closed and dropped from the hub.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeout := h.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	for id, conn := range h.conns {
		deadline := time.Now().Add(timeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		err := conn.SetWriteDeadline(deadline)
		if err == nil {
			err = conn.WriteJSON(message)
		}
		if err != nil {
			slog.Info("dropping local connection after failed write", "connectionId", id, "error", err)
			conn.Close()
			delete(h.conns, id)
		}
	}
	return nil
}
