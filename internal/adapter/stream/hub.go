// Package stream pushes buddy state to websocket subscribers and accepts
// actions over the same connection.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"treehouse/internal/app/action"
	"treehouse/internal/domain/buddy"

	"github.com/gorilla/websocket"
)

type Dispatcher interface {
	Execute(ctx context.Context, req action.Request) (action.Response, error)
}

type Message struct {
	Type   string           `json:"type"`
	State  *buddy.View      `json:"state,omitempty"`
	Result *action.Response `json:"result,omitempty"`
	Error  *ErrorBody       `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	MessageState        = "state"
	MessageActionResult = "action_result"
	MessageError        = "error"
)

type direct struct {
	client  *Client
	payload []byte
}

// Hub owns the set of connected clients. Only Run touches the set and the
// clients' send channels.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	direct     chan direct
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	latest     []byte

	actions  Dispatcher
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHub builds a hub. allowOrigin "" or "*" accepts any origin.
func NewHub(actions Dispatcher, allowOrigin string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		direct:     make(chan direct, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		actions:    actions,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowOrigin == "" || allowOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowOrigin
			},
		},
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Info("stream hub stopped")
			return
		case client := <-h.register:
			h.clients[client] = true
			if h.latest != nil {
				client.send <- h.latest
			}
			h.logger.Debug("stream client connected", "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("stream client disconnected", "clients", len(h.clients))
			}
		case message := <-h.broadcast:
			h.latest = message
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		case d := <-h.direct:
			if !h.clients[d.client] {
				continue
			}
			select {
			case d.client.send <- d.payload:
			default:
			}
		}
	}
}

// Follow forwards views into the hub until views closes or ctx ends.
func (h *Hub) Follow(ctx context.Context, views <-chan buddy.View) {
	for {
		select {
		case <-ctx.Done():
			return
		case view, ok := <-views:
			if !ok {
				return
			}
			payload, err := json.Marshal(Message{Type: MessageState, State: &view})
			if err != nil {
				h.logger.Error("encode state message", "error", err)
				continue
			}
			select {
			case h.broadcast <- payload:
			case <-ctx.Done():
				return
			case <-h.done:
				return
			}
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := newClient(h, conn)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) reply(c *Client, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode reply", "error", err)
		return
	}
	select {
	case h.direct <- direct{client: c, payload: payload}:
	case <-h.done:
	}
}
