// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSnapshotScheduler archives the concluded week's leaderboard shortly
// after every ISO week boundary. This is read-only reporting — daily/weekly
// counter resets stay lazy and request-triggered, never swept here.
func (s *LeaderboardService) StartSnapshotScheduler() {
	sched, _ := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	sched.Start()

	// Monday 00:05 UTC: the 5-minute offset keeps the job clear of requests
	// still stamped with Sunday's boundary values.
	_, _ = sched.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			if err := s.SnapshotLastWeek(); err != nil {
				log.Printf("[Scheduler] Weekly snapshot failed: %v", err)
				return
			}
			log.Println("✅ Weekly leaderboard snapshot archived")
		}),
	)
}
