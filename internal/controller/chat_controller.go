package controller

import (
	"github.com/bigcv/neo-livechat/internal/dto"
	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/serverutils"
	"github.com/bigcv/neo-livechat/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, apiKeyAuth fiber.Handler)
	SendChat(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetSessionMessages(ctx *fiber.Ctx) error
	UpdateSessionStatus(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, apiKeyAuth fiber.Handler) {
	// REST fallback for environments where the widget can't hold a socket.
	r.Post("/chat", apiKeyAuth, c.SendChat)

	sessions := r.Group("/sessions")
	sessions.Use(serverutils.JwtMiddleware)
	sessions.Get("/", c.GetSessions)
	sessions.Get("/:id/messages", c.GetSessionMessages)
	sessions.Patch("/:id/status", c.UpdateSessionStatus)
}

// SendChat runs one synchronous chat turn. Unlike the realtime path there is
// no typing-delay simulation; the reply comes back in the response body.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	customer, ok := ctx.Locals("customer").(*entity.Customer)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Unauthorized",
		})
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Message is required",
		})
	}

	res, err := c.service.SendChat(ctx.Context(), customer, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(res)
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	customerID, err := customerIDFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Unauthorized",
		})
	}

	sessions, err := c.service.GetActiveSessions(ctx.Context(), customerID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    sessions,
	})
}

func (c *chatController) GetSessionMessages(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid session ID",
		})
	}

	messages, err := c.service.GetSessionMessages(ctx.Context(), sessionID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    messages,
	})
}

func (c *chatController) UpdateSessionStatus(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid session ID",
		})
	}

	var req dto.UpdateSessionStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	status := entity.SessionStatus(req.Status)
	if status != entity.SessionStatusActive && status != entity.SessionStatusClosed {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Status must be active or closed",
		})
	}

	session, err := c.service.UpdateSessionStatus(ctx.Context(), sessionID, status)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data":    session,
	})
}
