package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo-learn-system/models"
)

func TestDailyQuestIDsAreSlugs(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range models.DailyQuests {
		assert.NotEmpty(t, q.ID)
		assert.NotContains(t, q.ID, " ")
		assert.False(t, seen[q.ID], "duplicate quest id %s", q.ID)
		seen[q.ID] = true
	}
	require.NotNil(t, models.FindDailyQuest("warm-up"))
	assert.Nil(t, models.FindDailyQuest("no-such-quest"))
}

func TestQuestCompleted(t *testing.T) {
	acc := &models.Account{
		DailyXPEarned:         25,
		DailyHighScoreLessons: 1,
		DailyTimeSpent:        1000,
	}

	tests := []struct {
		name      string
		threshold map[string]int64
		want      bool
	}{
		{"xp threshold met", map[string]int64{"daily_xp_earned": 20}, true},
		{"xp threshold not met", map[string]int64{"daily_xp_earned": 100}, false},
		{"high score threshold not met", map[string]int64{"daily_high_score_lessons": 3}, false},
		{"time threshold met", map[string]int64{"daily_time_spent": 900}, true},
		{"all thresholds must hold", map[string]int64{"daily_xp_earned": 20, "daily_high_score_lessons": 3}, false},
		{"unknown counter never completes", map[string]int64{"daily_lessons_finished": 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quest := &models.DailyQuest{ID: "test", Threshold: tt.threshold}
			assert.Equal(t, tt.want, QuestCompleted(acc, quest))
		})
	}
}

func TestQuestCatalogThresholdsResolve(t *testing.T) {
	// every predefined quest must be completable by some account state
	maxed := &models.Account{
		DailyXPEarned:         1_000_000,
		DailyHighScoreLessons: 1_000_000,
		DailyTimeSpent:        1_000_000,
	}
	for _, q := range models.DailyQuests {
		assert.True(t, QuestCompleted(maxed, &q), "quest %s has an unsatisfiable threshold", q.ID)
	}
}
