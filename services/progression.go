package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"lingo-learn-system/models"
	"lingo-learn-system/utils"
)

var (
	ErrQuestNotFound       = errors.New("quest not found")
	ErrQuestIncomplete     = errors.New("quest not completed yet")
	ErrQuestAlreadyClaimed = errors.New("quest reward already claimed today")
)

type ProgressionService struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewProgressionService(db *gorm.DB, clock utils.Clock) *ProgressionService {
	return &ProgressionService{DB: db, Clock: clock}
}

// EnsureAccount ensures an Account row exists for the user (idempotent)
func (s *ProgressionService) EnsureAccount(externalUserID, username string) (*models.Account, error) {
	var acc models.Account
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acc = *models.NewAccount(externalUserID, username, s.Clock.Now())
		if err := s.DB.Create(&acc).Error; err != nil {
			return nil, err
		}
		return &acc, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetProgress loads the account with any expired windows rolled forward,
// persisting the reset state when something changed.
func (s *ProgressionService) GetProgress(externalUserID string) (*models.Account, error) {
	var acc models.Account
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&acc).Error; err != nil {
		return nil, err
	}

	updated, changed := ApplyScheduledResets(acc, s.Clock.Now())
	if changed {
		// reset writes are idempotent, so a plain save is race-safe here
		if err := s.DB.Save(&updated).Error; err != nil {
			return nil, err
		}
	}
	return &updated, nil
}

// RecordAnswer credits a scored flashcard answer: XP into the total, daily
// and weekly buckets, streak bookkeeping, and a fresh idle clock. Resetting
// both last_answered_at and penalty_intervals_applied is what re-arms the
// decay grace period.
func (s *ProgressionService) RecordAnswer(externalUserID string, xp int64, highScore bool, timeSpentSec int64) (*models.Account, error) {
	if xp < 0 {
		return nil, fmt.Errorf("xp must be non-negative, got %d", xp)
	}
	if timeSpentSec < 0 {
		timeSpentSec = 0
	}
	now := s.Clock.Now()
	today := utils.DateUTC(now)
	yesterday := utils.DateUTC(now.AddDate(0, 0, -1))

	var result *models.Account
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var acc models.Account
		if err := tx.Where("external_user_id = ?", externalUserID).First(&acc).Error; err != nil {
			return fmt.Errorf("account not found for %s: %w", externalUserID, err)
		}

		acc, _ = ApplyScheduledResets(acc, now)

		acc.TotalXP += xp
		acc.DailyXPEarned += xp
		acc.WeeklyXP += xp
		acc.DailyTimeSpent += timeSpentSec
		if highScore {
			acc.DailyHighScoreLessons++
		}

		// re-arm the idle clock
		acc.LastAnsweredAt = &now
		acc.PenaltyIntervalsApplied = 0

		// Streak advances at most once per UTC day
		if acc.LastStudyDate != today {
			if acc.LastStudyDate == yesterday {
				acc.CurrentStreak++
			} else {
				acc.CurrentStreak = 1
			}
			if acc.CurrentStreak > acc.LongestStreak {
				acc.LongestStreak = acc.CurrentStreak
			}
			acc.LastStudyDate = today
		}
		acc.StreakHistory[utils.WeekdayIndexUTC(now)] = true

		if err := tx.Save(&acc).Error; err != nil {
			return err
		}

		// Copy for return (avoid pointer to loop/tx-local state)
		result = &models.Account{}
		*result = acc

		log.Printf("📚 XP Awarded: %s → +%d XP (total=%d, streak=%d)", externalUserID, xp, acc.TotalXP, acc.CurrentStreak)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ClaimQuestReward pays out a daily quest once per UTC day. The reward lands
// in total and weekly XP but deliberately not in daily_xp_earned, so a claim
// can't cascade-complete the other XP quests.
func (s *ProgressionService) ClaimQuestReward(externalUserID, questID string) (*models.Account, int64, error) {
	quest := models.FindDailyQuest(questID)
	if quest == nil {
		return nil, 0, ErrQuestNotFound
	}
	now := s.Clock.Now()

	var result *models.Account
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var acc models.Account
		if err := tx.Where("external_user_id = ?", externalUserID).First(&acc).Error; err != nil {
			return fmt.Errorf("account not found for %s: %w", externalUserID, err)
		}

		acc, _ = ApplyScheduledResets(acc, now)

		for _, claimed := range acc.DailyQuestXPClaimed {
			if claimed == quest.ID {
				return ErrQuestAlreadyClaimed
			}
		}
		if !QuestCompleted(&acc, quest) {
			return ErrQuestIncomplete
		}

		acc.DailyQuestXPClaimed = append(acc.DailyQuestXPClaimed, quest.ID)
		acc.TotalXP += quest.XPReward
		acc.WeeklyXP += quest.XPReward

		if err := tx.Save(&acc).Error; err != nil {
			return err
		}

		result = &models.Account{}
		*result = acc

		log.Printf("🏅 Quest claimed: %s → %s (+%d XP)", externalUserID, quest.ID, quest.XPReward)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result, quest.XPReward, nil
}

// QuestCompleted checks the quest's thresholds against the account's daily
// counters (all thresholds must hold).
func QuestCompleted(acc *models.Account, quest *models.DailyQuest) bool {
	for key, required := range quest.Threshold {
		switch key {
		case "daily_xp_earned":
			if acc.DailyXPEarned < required {
				return false
			}
		case "daily_high_score_lessons":
			if int64(acc.DailyHighScoreLessons) < required {
				return false
			}
		case "daily_time_spent":
			if acc.DailyTimeSpent < required {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// SetDecayEnabled flips the per-account decay opt-in.
func (s *ProgressionService) SetDecayEnabled(externalUserID string, enabled bool) error {
	res := s.DB.Model(&models.Account{}).
		Where("external_user_id = ?", externalUserID).
		Update("xp_decay_enabled", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account not found for %s", externalUserID)
	}
	return nil
}
