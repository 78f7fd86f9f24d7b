package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/shaneanderson428-svg/NFL-player-stock-simulation-app-sub000/internal/engine"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; same-origin policy is not
	// enforced for this read-only stream.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub fans applied price updates out to connected websocket clients. A slow
// client's buffer filling up drops that client rather than stalling the
// update loop.
type Hub struct {
	log     zerolog.Logger
	mu      sync.Mutex
	clients map[chan engine.Result]struct{}
}

// NewHub builds an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log, clients: make(map[chan engine.Result]struct{})}
}

// Broadcast queues a result for every connected client.
func (h *Hub) Broadcast(res engine.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for send := range h.clients {
		select {
		case send <- res:
		default:
			close(send)
			delete(h.clients, send)
		}
	}
}

func (h *Hub) subscribe() chan engine.Result {
	send := make(chan engine.Result, sendBufferSize)
	h.mu.Lock()
	h.clients[send] = struct{}{}
	h.mu.Unlock()
	return send
}

func (h *Hub) unsubscribe(send chan engine.Result) {
	h.mu.Lock()
	if _, ok := h.clients[send]; ok {
		close(send)
		delete(h.clients, send)
	}
	h.mu.Unlock()
}

// ServeWS upgrades the connection and streams price updates until the client
// goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	send := h.subscribe()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("ws client connected")

	// Reader only pumps control frames and detects disconnect.
	go func() {
		defer h.unsubscribe(send)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		for res := range send {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(res); err != nil {
				h.unsubscribe(send)
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}()
}
