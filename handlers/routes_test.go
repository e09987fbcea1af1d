package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo-learn-system/middleware"
	"lingo-learn-system/services"
	"lingo-learn-system/utils"
)

// emptyAccountStore satisfies services.AccountStore without a database.
type emptyAccountStore struct{}

func (emptyAccountStore) GetDecayState(string) (*services.DecayState, error) {
	return nil, services.ErrAccountNotFound
}

func (emptyAccountStore) ApplyDecayConditional(string, int64, int, int) (bool, error) {
	return false, nil
}

// Lesson mutations carry their admin guard per route. Registering the guard
// on a prefix-"/" group would turn it into global middleware and 403 every
// user route registered after lesson setup — exactly the registration order
// main.go uses, so replicate it here.
func TestUserRoutesReachableAfterLessonSetup(t *testing.T) {
	app := fiber.New()
	SetupLessonRoutes(app, services.NewLessonService(nil))

	settleDecay := middleware.XPDecayMiddleware(services.NewDecayService(emptyAccountStore{}), utils.RealClock{})
	app.Get("/user/progress", middleware.UserContextMiddleware(), settleDecay, func(c *fiber.Ctx) error {
		applied, _ := c.Locals(middleware.DecayAppliedKey).(int64)
		return c.JSON(fiber.Map{"xp_decay_applied": applied})
	})

	req := httptest.NewRequest("GET", "/user/progress", nil)
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-User-Roles", "user")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "ordinary users must reach progress routes")
}

func TestLessonMutationsRequireAdmin(t *testing.T) {
	app := fiber.New()
	SetupLessonRoutes(app, services.NewLessonService(nil))

	tests := []struct {
		name       string
		method     string
		path       string
		userID     string
		roles      string
		wantStatus int
	}{
		{"create without user context", "POST", "/lessons", "", "", fiber.StatusUnauthorized},
		{"create as non-admin", "POST", "/lessons", "user-1", "user", fiber.StatusForbidden},
		{"delete as non-admin", "DELETE", "/lessons/some-id", "user-1", "user", fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			if tt.roles != "" {
				req.Header.Set("X-User-Roles", tt.roles)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
