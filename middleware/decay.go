// middleware/decay.go
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lingo-learn-system/services"
	"lingo-learn-system/utils"
)

// DecayAppliedKey is the Locals key under which the middleware publishes
// the XP penalty applied during this request (int64, 0 when none).
const DecayAppliedKey = "xp_decay_applied"

// XPDecayMiddleware settles any owed inactivity decay before progress-bearing
// endpoints run, so the XP they report is already decayed. Best-effort by
// design: it never fails the request — storage errors and lost CAS races
// inside the service degrade to "no penalty applied this time".
func XPDecayMiddleware(decaySvc *services.DecayService, clock utils.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return c.Next()
		}

		applied := decaySvc.ApplyInactivityDecay(userID, clock.Now())
		c.Locals(DecayAppliedKey, applied)

		return c.Next()
	}
}
