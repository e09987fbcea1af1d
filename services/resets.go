package services

import (
	"time"

	"lingo-learn-system/models"
	"lingo-learn-system/utils"
)

// ApplyScheduledResets rolls forward any expired daily/weekly/streak windows
// on the account. Pure function of (account, now): the caller persists the
// returned record when changed is true. Idempotent — once a marker matches
// the current boundary the corresponding check is a no-op, so duplicate or
// concurrent invocations converge on the same state.
//
// Boundaries are derived from now exactly once, so a clock tick over
// midnight mid-call cannot split the three checks across two days.
func ApplyScheduledResets(acc models.Account, now time.Time) (models.Account, bool) {
	today := utils.DateUTC(now)
	currentMonday := utils.MondayOfWeekUTC(now)
	changed := false

	// Daily quest window
	if acc.QuestResetDate != today {
		acc.DailyXPEarned = 0
		acc.DailyHighScoreLessons = 0
		acc.DailyTimeSpent = 0
		acc.DailyQuestXPClaimed = []string{}
		acc.QuestResetDate = today
		changed = true
	}

	// Weekly XP window
	if acc.WeekResetDate != currentMonday {
		acc.WeeklyXP = 0
		acc.WeekResetDate = currentMonday
		changed = true
	}

	// Streak history window. Clearing first and then re-marking today keeps
	// "I already studied today" visible across the week boundary.
	if acc.StreakWeekStart != currentMonday {
		acc.StreakHistory = make([]bool, 7)
		acc.StreakWeekStart = currentMonday
		if acc.LastStudyDate == today {
			acc.StreakHistory[utils.WeekdayIndexUTC(now)] = true
		}
		changed = true
	}

	// Stored counters are non-critical bookkeeping; clamp anything a bad
	// write left negative instead of propagating it.
	if acc.DailyXPEarned < 0 {
		acc.DailyXPEarned = 0
		changed = true
	}
	if acc.WeeklyXP < 0 {
		acc.WeeklyXP = 0
		changed = true
	}
	if len(acc.StreakHistory) != 7 {
		acc.EnsureStreakHistory()
		changed = true
	}

	return acc, changed
}
