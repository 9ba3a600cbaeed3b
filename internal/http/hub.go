package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/pitchside/internal/bridge"
	"github.com/mauv0809/pitchside/internal/command"
	"github.com/mauv0809/pitchside/internal/match"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Hub fans match state snapshots out to every connected WebSocket client and
// feeds inbound envelopes into the dispatcher.
type Hub struct {
	mu         sync.Mutex
	clients    map[*wsClient]bool
	upgrader   websocket.Upgrader
	dispatcher *command.Dispatcher
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(dispatcher *command.Dispatcher) *Hub {
	return &Hub{
		clients: make(map[*wsClient]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The scoreboard is served from arbitrary local hosts.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		dispatcher: dispatcher,
	}
}

// ServeWS upgrades the request and keeps the connection until the client
// goes away.
func (h *Hub) ServeWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade WebSocket connection", "error", err)
			return
		}

		client := &wsClient{conn: conn, send: make(chan []byte, 16)}
		h.register(client)
		log.Info("WebSocket client connected", "remote", conn.RemoteAddr())

		go h.writePump(client)
		h.readPump(client)
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("WebSocket read error", "error", err)
			}
			return
		}

		var env bridge.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Warn("Dropping malformed WebSocket message", "error", err)
			continue
		}
		h.dispatcher.HandleEnvelope(env)
	}
}

func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast sends a state snapshot to every connected client. Clients that
// cannot keep up are disconnected rather than blocking the engine.
func (h *Hub) Broadcast(state match.MatchState) {
	data, err := json.Marshal(bridge.Envelope{Type: bridge.MessageStateUpdate, State: &state})
	if err != nil {
		log.Error("Failed to encode state broadcast", "error", err)
		return
	}

	h.mu.Lock()
	var stale []*wsClient
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			stale = append(stale, c)
		}
	}
	for _, c := range stale {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
