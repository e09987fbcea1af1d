package services

import (
	"errors"

	"gorm.io/gorm"

	"lingo-learn-system/models"
)

// GormAccountStore backs the decay applicator with the accounts table.
type GormAccountStore struct {
	DB *gorm.DB
}

func NewGormAccountStore(db *gorm.DB) *GormAccountStore {
	return &GormAccountStore{DB: db}
}

func (s *GormAccountStore) GetDecayState(userID string) (*DecayState, error) {
	var acc models.Account
	err := s.DB.
		Select("total_xp", "last_answered_at", "penalty_intervals_applied", "xp_decay_enabled").
		Where("external_user_id = ?", userID).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &DecayState{
		TotalXP:                 acc.TotalXP,
		LastAnsweredAt:          acc.LastAnsweredAt,
		PenaltyIntervalsApplied: acc.PenaltyIntervalsApplied,
		XPDecayEnabled:          acc.XPDecayEnabled,
	}, nil
}

// ApplyDecayConditional commits a decay penalty with optimistic concurrency:
// penalty_intervals_applied acts as the version token, so the WHERE clause
// makes the whole update a no-op if a concurrent caller advanced it first.
// GREATEST keeps total_xp from going negative even against a stale read.
func (s *GormAccountStore) ApplyDecayConditional(userID string, penalty int64, totalIntervals, seenIntervals int) (bool, error) {
	res := s.DB.Model(&models.Account{}).
		Where("external_user_id = ? AND penalty_intervals_applied = ?", userID, seenIntervals).
		Updates(map[string]interface{}{
			"total_xp":                  gorm.Expr("GREATEST(total_xp - ?, 0)", penalty),
			"penalty_intervals_applied": totalIntervals,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
