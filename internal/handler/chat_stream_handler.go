package handler

import (
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/service"
	internalWS "github.com/bigcv/neo-livechat/internal/websocket"
	"github.com/bigcv/neo-livechat/pkg/bot"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatStreamHandler exposes the realtime widget endpoint. The upgrade is
// unauthenticated on purpose: visitors are anonymous, and the customer and
// visitor identities arrive in the first init frame after the upgrade.
type ChatStreamHandler struct {
	store     service.IChatStore
	responder *bot.Responder
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewChatStreamHandler(store service.IChatStore, responder *bot.Responder, hub *internalWS.Hub, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		store:     store,
		responder: responder,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the widget.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatStreamHandler", "Starting WebSocket session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
			internalWS.ServeWs(h.hub, conn, h.store, h.responder, h.logger)
			h.logger.Info("ChatStreamHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the realtime routes.
func (h *ChatStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
