// middleware/gateway.go
package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware rejects any request that doesn't carry this
// service's token. The Gateway is the only intended caller; browsers never
// reach this service directly.
func GatewayAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("LEARNING_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Fatal("❌ LEARNING_SERVICE_TOKEN is not set, refusing to start unauthenticated")
	}

	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			log.Printf("🚫 [GATEWAY_AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "gateway authentication token missing",
			})
		}

		// accept both "Bearer <token>" and a bare token value
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			token = header
		}

		if token != expectedToken {
			log.Printf("❌ [GATEWAY_AUTH] Invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway authentication token",
			})
		}

		return c.Next()
	}
}
