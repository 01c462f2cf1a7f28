package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var errClientClosed = errors.New("client send channel closed")

// Client is a middleman between the websocket transport and the protocol
// state machine.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Protocol state machine driven by this transport
	Connection *Connection

	// Buffered channel of outbound messages.
	Send chan []byte

	closeOnce sync.Once
	closedMu  sync.RWMutex
	closed    bool
}

// Push serializes an event onto the outbound channel. A full buffer or a
// closed transport drops the event rather than blocking the caller; late
// sends from delayed-reply timers land here harmlessly.
func (c *Client) Push(event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	c.closedMu.RLock()
	defer c.closedMu.RUnlock()
	if c.closed {
		return errClientClosed
	}

	select {
	case c.Send <- data:
		return nil
	default:
		return errors.New("client send buffer full")
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.closedMu.Lock()
		c.closed = true
		close(c.Send)
		c.closedMu.Unlock()
	})
}

// readPump pumps frames from the websocket transport into the state machine.
func (c *Client) readPump() {
	ctx := context.Background()
	defer func() {
		c.Connection.Close(ctx)
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"connection_id": c.Connection.Id,
					"error":         err.Error(),
				})
			}
			break
		}
		c.Connection.HandleInbound(ctx, raw)
	}
}

// writePump pumps outbound events to the websocket transport.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
