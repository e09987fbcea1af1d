package services

import (
	"errors"
	"log"
	"math"
	"time"
)

// Inactivity decay tuning. An idle learner keeps full XP for GracePeriod;
// after that every elapsed DecayInterval multiplies remaining XP by DecayRate.
const (
	GracePeriod   = 48 * time.Hour
	DecayInterval = 24 * time.Hour
	DecayRate     = 0.85

	// MaxIntervalsPerCall caps the exponent for very long-dormant accounts.
	// 0.85^200 already underflows any realistic XP balance to zero, so the
	// uncapped totalIntervals is still safe to store as the catch-up marker.
	MaxIntervalsPerCall = 200
)

// ErrAccountNotFound is returned by AccountStore implementations when the
// target user has no account row.
var ErrAccountNotFound = errors.New("account not found")

// DecayState is the minimal projection the applicator reads: just the
// fields the calculator needs plus the opt-in flag.
type DecayState struct {
	TotalXP                 int64
	LastAnsweredAt          *time.Time
	PenaltyIntervalsApplied int
	XPDecayEnabled          bool
}

// AccountStore is the storage boundary for the decay applicator.
// ApplyDecayConditional must be a compare-and-swap on
// penalty_intervals_applied: subtract penalty and advance the interval
// marker only while the stored marker still equals seenIntervals, and
// report whether any row was actually updated.
type AccountStore interface {
	GetDecayState(userID string) (*DecayState, error)
	ApplyDecayConditional(userID string, penalty int64, totalIntervals, seenIntervals int) (bool, error)
}

// ComputeDecay calculates the XP penalty owed for inactivity. Pure: given
// the same inputs it always returns the same (penalty, totalIntervals).
// totalIntervals is the cumulative interval count to persist alongside the
// penalty; a zero penalty means nothing should be written.
func ComputeDecay(totalXP int64, lastAnsweredAt *time.Time, intervalsApplied int, now time.Time) (int64, int) {
	if lastAnsweredAt == nil || totalXP <= 0 {
		return 0, 0
	}
	if intervalsApplied < 0 {
		// corrupt counter; treat as never charged
		intervalsApplied = 0
	}

	idle := now.Sub(*lastAnsweredAt)
	if idle <= GracePeriod {
		return 0, intervalsApplied
	}

	totalIntervals := int((idle - GracePeriod) / DecayInterval)
	newIntervals := totalIntervals - intervalsApplied
	if newIntervals <= 0 {
		// already caught up — guards against double application when two
		// callers compute over the same window
		return 0, intervalsApplied
	}

	exponent := newIntervals
	if exponent > MaxIntervalsPerCall {
		exponent = MaxIntervalsPerCall
	}
	multiplier := math.Pow(DecayRate, float64(exponent))

	newXP := int64(math.Floor(float64(totalXP) * multiplier))
	if newXP < 0 {
		newXP = 0
	}

	return totalXP - newXP, totalIntervals
}

type DecayService struct {
	Store AccountStore
}

func NewDecayService(store AccountStore) *DecayService {
	return &DecayService{Store: store}
}

// ApplyInactivityDecay ensures any owed decay penalty is committed at most
// once, and returns the amount applied by THIS call (0 when nothing was
// owed, the account opted out, or a concurrent caller won the write).
// Never returns an error: decay is best-effort enrichment and must not
// block the enclosing request, so failures are logged and swallowed.
func (s *DecayService) ApplyInactivityDecay(userID string, now time.Time) int64 {
	state, err := s.Store.GetDecayState(userID)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			log.Printf("⚠️ [DECAY] read failed for user %s: %v", userID, err)
		}
		return 0
	}
	if !state.XPDecayEnabled {
		return 0
	}

	penalty, totalIntervals := ComputeDecay(state.TotalXP, state.LastAnsweredAt, state.PenaltyIntervalsApplied, now)
	if penalty == 0 {
		return 0
	}

	applied, err := s.Store.ApplyDecayConditional(userID, penalty, totalIntervals, state.PenaltyIntervalsApplied)
	if err != nil {
		log.Printf("⚠️ [DECAY] conditional update failed for user %s: %v", userID, err)
		return 0
	}
	if !applied {
		// another request already charged this window — not an error
		return 0
	}

	log.Printf("⏳ [DECAY] user %s lost %d XP (%d intervals charged)", userID, penalty, totalIntervals-state.PenaltyIntervalsApplied)
	return penalty
}
