package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo-learn-system/models"
)

// Tuesday 2024-01-02, 10:00 UTC; Monday of that week is 2024-01-01.
var resetNow = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

func currentAccount() models.Account {
	return models.Account{
		ExternalUserID:        "user-1",
		TotalXP:               500,
		DailyXPEarned:         40,
		DailyHighScoreLessons: 2,
		DailyTimeSpent:        600,
		DailyQuestXPClaimed:   []string{"warm-up"},
		QuestResetDate:        "2024-01-02",
		WeeklyXP:              120,
		WeekResetDate:         "2024-01-01",
		CurrentStreak:         4,
		LongestStreak:         9,
		LastStudyDate:         "2024-01-02",
		StreakHistory:         []bool{true, true, false, false, false, false, false},
		StreakWeekStart:       "2024-01-01",
	}
}

func TestResetsNoopWhenCurrent(t *testing.T) {
	acc, changed := ApplyScheduledResets(currentAccount(), resetNow)
	assert.False(t, changed)
	assert.Equal(t, int64(40), acc.DailyXPEarned)
	assert.Equal(t, int64(120), acc.WeeklyXP)
	assert.Equal(t, []string{"warm-up"}, acc.DailyQuestXPClaimed)
}

func TestDailyReset(t *testing.T) {
	acc := currentAccount()
	acc.QuestResetDate = "2024-01-01"

	updated, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)
	assert.Zero(t, updated.DailyXPEarned)
	assert.Zero(t, updated.DailyHighScoreLessons)
	assert.Zero(t, updated.DailyTimeSpent)
	assert.Empty(t, updated.DailyQuestXPClaimed)
	assert.Equal(t, "2024-01-02", updated.QuestResetDate)

	// weekly window untouched — still the same ISO week
	assert.Equal(t, int64(120), updated.WeeklyXP)
}

func TestWeeklyReset(t *testing.T) {
	acc := currentAccount()
	acc.WeekResetDate = "2023-12-25"

	updated, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)
	assert.Zero(t, updated.WeeklyXP)
	assert.Equal(t, "2024-01-01", updated.WeekResetDate)
}

func TestStreakHistoryResetWithoutCarryOver(t *testing.T) {
	acc := currentAccount()
	acc.StreakWeekStart = "2023-12-25"
	acc.LastStudyDate = "2023-12-29" // studied last week, not today

	updated, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)
	assert.Equal(t, "2024-01-01", updated.StreakWeekStart)
	assert.Equal(t, make([]bool, 7), updated.StreakHistory)
}

func TestStreakHistoryCarryOverSameDay(t *testing.T) {
	// studied today, then the displayed week rolls over: today's flag must
	// survive the clear
	acc := currentAccount()
	acc.StreakWeekStart = "2023-12-25"
	acc.LastStudyDate = "2024-01-02"
	acc.StreakHistory = []bool{true, true, true, true, true, true, true}

	updated, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)

	trueCount := 0
	for _, studied := range updated.StreakHistory {
		if studied {
			trueCount++
		}
	}
	assert.Equal(t, 1, trueCount)
	assert.True(t, updated.StreakHistory[1], "Tuesday slot (index 1) must carry over")
}

func TestResetsIdempotent(t *testing.T) {
	acc := currentAccount()
	acc.QuestResetDate = "2024-01-01"
	acc.WeekResetDate = "2023-12-25"
	acc.StreakWeekStart = "2023-12-25"

	once, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)

	twice, changedAgain := ApplyScheduledResets(once, resetNow)
	assert.False(t, changedAgain)
	assert.Equal(t, once, twice)
}

func TestMalformedMarkersForceReset(t *testing.T) {
	acc := currentAccount()
	acc.QuestResetDate = "not-a-date"
	acc.WeekResetDate = ""

	updated, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)
	assert.Equal(t, "2024-01-02", updated.QuestResetDate)
	assert.Equal(t, "2024-01-01", updated.WeekResetDate)
	assert.Zero(t, updated.DailyXPEarned)
	assert.Zero(t, updated.WeeklyXP)
}

func TestCorruptCountersClamped(t *testing.T) {
	acc := currentAccount()
	acc.DailyXPEarned = -50
	acc.WeeklyXP = -3
	acc.StreakHistory = []bool{true, false} // wrong length

	updated, changed := ApplyScheduledResets(acc, resetNow)
	require.True(t, changed)
	assert.Zero(t, updated.DailyXPEarned)
	assert.Zero(t, updated.WeeklyXP)
	assert.Len(t, updated.StreakHistory, 7)
}

func TestResetsPure(t *testing.T) {
	acc := currentAccount()
	acc.QuestResetDate = "2024-01-01"
	acc.StreakWeekStart = "2023-12-25"

	before := acc
	beforeHistory := append([]bool(nil), acc.StreakHistory...)

	_, _ = ApplyScheduledResets(acc, resetNow)

	assert.Equal(t, before.QuestResetDate, acc.QuestResetDate)
	assert.Equal(t, beforeHistory, acc.StreakHistory)
}

func TestAllThreeWindowsRollTogetherAtMidnightMonday(t *testing.T) {
	// first request of a new ISO week observes all three boundaries at once
	mondayMidnight := time.Date(2024, 1, 8, 0, 0, 1, 0, time.UTC)

	acc := currentAccount()
	updated, changed := ApplyScheduledResets(acc, mondayMidnight)
	require.True(t, changed)
	assert.Equal(t, "2024-01-08", updated.QuestResetDate)
	assert.Equal(t, "2024-01-08", updated.WeekResetDate)
	assert.Equal(t, "2024-01-08", updated.StreakWeekStart)
	assert.Zero(t, updated.DailyXPEarned)
	assert.Zero(t, updated.WeeklyXP)
	assert.Equal(t, make([]bool, 7), updated.StreakHistory)
}
