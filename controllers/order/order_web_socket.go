package ordercontroller

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/infpro/storefront-api/models"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many unsent orders a slow client may fall behind
	// before it is dropped.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans newly created orders out to every connected feed client. Each
// client has its own writer goroutine, so Broadcast never waits on a socket.
type Hub struct {
	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*feedClient]struct{})}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the connection registered until the
// client goes away. Incoming messages are read and discarded.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := &feedClient{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go client.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(client)
			return
		}
	}
}

// Broadcast queues order as a JSON text frame for every client. A client
// whose queue is full is dropped.
func (h *Hub) Broadcast(ctx context.Context, order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		slog.ErrorContext(ctx, "encode order for feed", "order_id", order.ID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slog.WarnContext(ctx, "drop slow feed client", "order_id", order.ID)
			h.unregister(client)
		}
	}
}

// remove unregisters client if it is still registered.
func (h *Hub) remove(client *feedClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregister(client)
}

// unregister closes the client's queue; its writer then closes the socket.
// Caller holds h.mu.
func (h *Hub) unregister(client *feedClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

func (fc *feedClient) writeLoop() {
	defer fc.conn.Close()
	for data := range fc.send {
		fc.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := fc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// The reader sees the closed socket and unregisters the client.
			return
		}
	}
	fc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	fc.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
