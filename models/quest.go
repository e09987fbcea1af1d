package models

import (
	"github.com/gosimple/slug"
)

// DailyQuest: static config for one daily objective. Quest IDs are slugs of
// the quest name; claimed IDs are what lands in Account.DailyQuestXPClaimed.
type DailyQuest struct {
	ID          string
	Name        string
	Description string
	XPReward    int64
	Threshold   map[string]int64 // e.g., {"daily_xp_earned": 50}
}

// Predefined daily quests. Completion is judged against the account's daily
// counters, so all thresholds reset together at the UTC day boundary.
var DailyQuests = []DailyQuest{
	{
		Name:        "Warm Up",
		Description: "Earn 20 XP today",
		XPReward:    10,
		Threshold:   map[string]int64{"daily_xp_earned": 20},
	},
	{
		Name:        "Committed Learner",
		Description: "Earn 100 XP today",
		XPReward:    40,
		Threshold:   map[string]int64{"daily_xp_earned": 100},
	},
	{
		Name:        "Perfectionist",
		Description: "Finish 3 lessons with a high score today",
		XPReward:    30,
		Threshold:   map[string]int64{"daily_high_score_lessons": 3},
	},
	{
		Name:        "Deep Focus",
		Description: "Study for 15 minutes today",
		XPReward:    25,
		Threshold:   map[string]int64{"daily_time_spent": 900},
	},
}

func init() {
	for i := range DailyQuests {
		DailyQuests[i].ID = slug.Make(DailyQuests[i].Name)
	}
}

// FindDailyQuest looks a quest up by its slug ID.
func FindDailyQuest(id string) *DailyQuest {
	for i := range DailyQuests {
		if DailyQuests[i].ID == id {
			return &DailyQuests[i]
		}
	}
	return nil
}
