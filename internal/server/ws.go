package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FramesHandler broadcasts live frame results via WebSocket. The
// pipeline pushes each FrameResult through Publish; the handler fans it
// out to every connected client. Slow clients drop messages rather
// than stalling the pipeline.
type FramesHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewFramesHandler creates an empty broadcast hub.
func NewFramesHandler() *FramesHandler {
	return &FramesHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FramesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *FramesHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts one frame result to all connected clients. It is
// cheap with no clients connected.
func (h *FramesHandler) Publish(res *gesture.FrameResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"frame":     res,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("frame marshal error: %v", err)
		return
	}

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("frame broadcast error: %v", err)
		}
	}
}
