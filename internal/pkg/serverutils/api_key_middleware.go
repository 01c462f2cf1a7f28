package serverutils

import (
	"github.com/bigcv/neo-livechat/internal/service"

	"github.com/gofiber/fiber/v2"
)

// APIKeyMiddleware authenticates widget-server requests carrying an
// X-API-Key header. The resolved customer is stored in Locals under
// "customer" for downstream handlers.
func APIKeyMiddleware(auth service.IAuthService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ctx.Get("X-API-Key")
		if key == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing API key"})
		}

		customer, err := auth.ValidateAPIKey(ctx.UserContext(), key)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid API key"})
		}

		ctx.Locals("customer", customer)
		return ctx.Next()
	}
}
