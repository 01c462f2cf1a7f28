package websocket

import (
	"github.com/gofiber/websocket/v2"

	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/service"
	"github.com/bigcv/neo-livechat/pkg/bot"
)

// ServeWs wires one upgraded transport to a fresh protocol connection and
// runs its pumps. The visitor stays anonymous here: identity arrives later in
// the init frame, not in the upgrade request.
func ServeWs(hub *Hub, c *websocket.Conn, store service.IChatStore, responder *bot.Responder, log logger.ILogger) {
	client := &Client{Hub: hub, Conn: c, Send: make(chan []byte, 256)}
	client.Connection = NewConnection(store, responder, client, log)
	client.Hub.register <- client

	go client.writePump()
	client.Connection.Open()
	client.readPump() // Run readPump in current goroutine (handler)
}
