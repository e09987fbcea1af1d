// utils/clock.go
package utils

import "time"

// DateLayout is the canonical YYYY-MM-DD format used for all reset markers.
// Every marker stored on an account (quest_reset_date, week_reset_date,
// streak_week_start, last_study_date) is a UTC calendar date in this layout.
const DateLayout = "2006-01-02"

// Clock abstracts the time source so reset/decay logic is testable
// against literal instants.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// DateUTC returns the UTC calendar date of t as YYYY-MM-DD.
func DateUTC(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// MondayOfWeekUTC returns the Monday (UTC) of the ISO week containing t,
// as YYYY-MM-DD. ISO weeks start on Monday; Go's Weekday starts on Sunday.
func MondayOfWeekUTC(t time.Time) string {
	u := t.UTC()
	offset := (int(u.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := u.AddDate(0, 0, -offset)
	return monday.Format(DateLayout)
}

// WeekdayIndexUTC returns the ISO weekday index of t in UTC:
// Monday=0 .. Sunday=6. Used to address streak_history slots.
func WeekdayIndexUTC(t time.Time) int {
	return (int(t.UTC().Weekday()) + 6) % 7
}
