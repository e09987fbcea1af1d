// handlers/progress_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lingo-learn-system/middleware"
	"lingo-learn-system/models"
	"lingo-learn-system/services"
	"lingo-learn-system/utils"
)

func SetupProgressRoutes(app *fiber.App, progression *services.ProgressionService, decaySvc *services.DecayService, leaderboard *services.LeaderboardService, clock utils.Clock) {
	// 🔐 Secured routes — require user context forwarded by the Gateway.
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// Progress-bearing reads settle owed decay first, so the XP they report
	// is already decayed and the response can say how much was just lost.
	// Attached per route: only these GETs pay the extra account read.
	settleDecay := middleware.XPDecayMiddleware(decaySvc, clock)

	securedGroup.Get("/user/progress", settleDecay, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		username, _ := c.Locals("username").(string)

		acc, err := progression.GetProgress(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				acc, err = progression.EnsureAccount(userID, username)
				if err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "failed to create account",
						"cause": err.Error(),
					})
				}
			} else {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "DB error fetching progress",
					"cause": err.Error(),
				})
			}
		}

		claimed := make(map[string]bool, len(acc.DailyQuestXPClaimed))
		for _, id := range acc.DailyQuestXPClaimed {
			claimed[id] = true
		}
		quests := make([]fiber.Map, len(models.DailyQuests))
		for i := range models.DailyQuests {
			q := &models.DailyQuests[i]
			quests[i] = fiber.Map{
				"id":          q.ID,
				"name":        q.Name,
				"description": q.Description,
				"xp_reward":   q.XPReward,
				"completed":   services.QuestCompleted(acc, q),
				"claimed":     claimed[q.ID],
			}
		}

		decayApplied, _ := c.Locals(middleware.DecayAppliedKey).(int64)

		return c.JSON(fiber.Map{
			"id":                       acc.ID,
			"total_xp":                 acc.TotalXP,
			"weekly_xp":                acc.WeeklyXP,
			"daily_xp_earned":          acc.DailyXPEarned,
			"daily_high_score_lessons": acc.DailyHighScoreLessons,
			"daily_time_spent":         acc.DailyTimeSpent,
			"current_streak":           acc.CurrentStreak,
			"longest_streak":           acc.LongestStreak,
			"last_study_date":          acc.LastStudyDate,
			"streak_history":           acc.StreakHistory,
			"xp_decay_enabled":         acc.XPDecayEnabled,
			"xp_decay_applied":         decayApplied, // advisory: "you lost N XP due to inactivity"
			"daily_quests":             quests,
		})
	})

	securedGroup.Post("/user/answers", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		username, _ := c.Locals("username").(string)

		type Req struct {
			XP               int64 `json:"xp"`
			HighScore        bool  `json:"high_score"`
			TimeSpentSeconds int64 `json:"time_spent_seconds"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		if _, err := progression.EnsureAccount(userID, username); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to ensure account",
				"cause": err.Error(),
			})
		}

		acc, err := progression.RecordAnswer(userID, req.XP, req.HighScore, req.TimeSpentSeconds)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record answer",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"total_xp":        acc.TotalXP,
			"daily_xp_earned": acc.DailyXPEarned,
			"weekly_xp":       acc.WeeklyXP,
			"current_streak":  acc.CurrentStreak,
			"longest_streak":  acc.LongestStreak,
		})
	})

	securedGroup.Post("/user/quests/:questID/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		questID := c.Params("questID")

		acc, reward, err := progression.ClaimQuestReward(userID, questID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQuestNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown quest"})
			case errors.Is(err, services.ErrQuestIncomplete):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "quest not completed yet"})
			case errors.Is(err, services.ErrQuestAlreadyClaimed):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "quest reward already claimed today"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to claim quest",
					"cause": err.Error(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"quest_id":   questID,
			"xp_awarded": reward,
			"total_xp":   acc.TotalXP,
			"weekly_xp":  acc.WeeklyXP,
		})
	})

	securedGroup.Get("/leaderboard/weekly", settleDecay, func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		weekMonday := utils.MondayOfWeekUTC(clock.Now())

		entries, err := leaderboard.WeeklyTop(weekMonday, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"week_start": weekMonday,
			"entries":    entries,
		})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Post("/decay/toggle", func(c *fiber.Ctx) error {
		type Req struct {
			UserID  string `json:"user_id" validate:"required,uuid"`
			Enabled bool   `json:"enabled"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		if err := progression.SetDecayEnabled(req.UserID, req.Enabled); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to toggle decay",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "decay flag updated",
			"user_id": req.UserID,
			"enabled": req.Enabled,
		})
	})
}
