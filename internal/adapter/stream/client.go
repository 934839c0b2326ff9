package stream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"treehouse/internal/app/action"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

// readPump decodes inbound action requests and dispatches them.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		c.handle(message)
	}
}

func (c *Client) handle(message []byte) {
	var req action.Request
	if err := json.Unmarshal(message, &req); err != nil {
		c.hub.reply(c, Message{Type: MessageError, Error: &ErrorBody{Code: "invalid_json", Message: "invalid json"}})
		return
	}
	if c.hub.actions == nil {
		c.hub.reply(c, Message{Type: MessageError, Error: &ErrorBody{Code: "read_only", Message: "actions are not accepted on this stream"}})
		return
	}
	resp, err := c.hub.actions.Execute(context.Background(), req)
	if err != nil {
		c.hub.reply(c, Message{Type: MessageError, Error: errorBody(err)})
		return
	}
	c.hub.reply(c, Message{Type: MessageActionResult, Result: &resp})
}

func errorBody(err error) *ErrorBody {
	switch {
	case errors.Is(err, action.ErrInvalidActionParams):
		return &ErrorBody{Code: "invalid_action_params", Message: err.Error()}
	case errors.Is(err, action.ErrInvalidRequest):
		return &ErrorBody{Code: "bad_request", Message: err.Error()}
	default:
		return &ErrorBody{Code: "internal_error", Message: "internal error"}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
