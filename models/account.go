package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lingo-learn-system/utils"
)

// Account tracks gamified progression for each learner (denormalized for performance)
type Account struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service
	Username       string `gorm:"index" json:"username"`

	// Core XP state
	TotalXP                 int64      `json:"total_xp" gorm:"default:0"`
	LastAnsweredAt          *time.Time `json:"last_answered_at,omitempty"`
	PenaltyIntervalsApplied int        `json:"penalty_intervals_applied" gorm:"default:0"` // decay intervals already charged; doubles as the CAS version token
	XPDecayEnabled          bool       `json:"xp_decay_enabled" gorm:"default:false"`

	// Daily counters — zeroed every UTC calendar day
	DailyXPEarned         int64    `json:"daily_xp_earned" gorm:"default:0"`
	DailyHighScoreLessons int      `json:"daily_high_score_lessons" gorm:"default:0"`
	DailyTimeSpent        int64    `json:"daily_time_spent" gorm:"default:0"` // seconds
	DailyQuestXPClaimed   []string `json:"daily_quest_xp_claimed" gorm:"type:jsonb;serializer:json"`
	QuestResetDate        string   `json:"quest_reset_date" gorm:"type:varchar(10)"` // YYYY-MM-DD (UTC)

	// Weekly counters — zeroed every ISO week (Monday-start, UTC)
	WeeklyXP      int64  `json:"weekly_xp" gorm:"default:0"`
	WeekResetDate string `json:"week_reset_date" gorm:"type:varchar(10)"` // Monday of the last reset week

	// Streak tracking
	CurrentStreak   int    `json:"current_streak" gorm:"default:0"`
	LongestStreak   int    `json:"longest_streak" gorm:"default:0"`
	LastStudyDate   string `json:"last_study_date" gorm:"type:varchar(10)"`
	StreakHistory   []bool `json:"streak_history" gorm:"type:jsonb;serializer:json"` // exactly 7 entries, index 0 = Monday
	StreakWeekStart string `json:"streak_week_start" gorm:"type:varchar(10)"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// NewAccount builds a fresh account with registration defaults: all counters
// zero, decay opted out, reset markers anchored to now's UTC boundaries.
func NewAccount(externalUserID, username string, now time.Time) *Account {
	return &Account{
		ID:                  uuid.NewString(),
		ExternalUserID:      externalUserID,
		Username:            username,
		DailyQuestXPClaimed: []string{},
		QuestResetDate:      utils.DateUTC(now),
		WeekResetDate:       utils.MondayOfWeekUTC(now),
		StreakHistory:       make([]bool, 7),
		StreakWeekStart:     utils.MondayOfWeekUTC(now),
	}
}

// EnsureStreakHistory clamps streak_history back to exactly 7 entries.
// Corrupt rows (too short, too long, or null jsonb) come back as all-false
// rather than failing the request.
func (a *Account) EnsureStreakHistory() {
	if len(a.StreakHistory) != 7 {
		a.StreakHistory = make([]bool, 7)
	}
}
