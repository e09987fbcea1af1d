package services

import (
	"encoding/json"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"lingo-learn-system/models"
	"lingo-learn-system/utils"
)

type LeaderboardService struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewLeaderboardService(db *gorm.DB, clock utils.Clock) *LeaderboardService {
	return &LeaderboardService{DB: db, Clock: clock}
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	ExternalUserID string `json:"external_user_id"`
	DisplayName    string `json:"display_name"`
	WeeklyXP       int64  `json:"weekly_xp"`
}

var displayCaser = cases.Title(language.Und)

// WeeklyTop returns the top learners by weekly XP for the week whose Monday
// marker matches weekMonday. Filtering on week_reset_date keeps dormant
// accounts with stale weekly counters out of the ranking — their rows only
// roll forward once they become active again.
func (s *LeaderboardService) WeeklyTop(weekMonday string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var accounts []models.Account
	err := s.DB.
		Select("external_user_id", "username", "weekly_xp").
		Where("week_reset_date = ? AND weekly_xp > 0", weekMonday).
		Order("weekly_xp DESC").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(accounts))
	for i, acc := range accounts {
		name := acc.Username
		if name == "" {
			name = acc.ExternalUserID
		}
		entries[i] = LeaderboardEntry{
			Rank:           i + 1,
			ExternalUserID: acc.ExternalUserID,
			DisplayName:    displayCaser.String(name),
			WeeklyXP:       acc.WeeklyXP,
		}
	}
	return entries, nil
}

// WeeklySnapshot is the archived form of one concluded week's leaderboard.
type WeeklySnapshot struct {
	WeekStart  string             `json:"week_start"`
	TakenAt    time.Time          `json:"taken_at"`
	Entries    []LeaderboardEntry `json:"entries"`
	EntryCount int                `json:"entry_count"`
}

// SnapshotLastWeek archives the just-concluded week's top list to the
// snapshot store. Reporting only: the lazy reset markers remain the source
// of truth for which week a row's weekly_xp belongs to.
func (s *LeaderboardService) SnapshotLastWeek() error {
	now := s.Clock.Now()
	lastMonday := utils.MondayOfWeekUTC(now.AddDate(0, 0, -7))

	entries, err := s.WeeklyTop(lastMonday, 100)
	if err != nil {
		return err
	}

	snap := WeeklySnapshot{
		WeekStart:  lastMonday,
		TakenAt:    now.UTC(),
		Entries:    entries,
		EntryCount: len(entries),
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return utils.UploadSnapshotJSON("leaderboards/"+lastMonday+".json", payload)
}
