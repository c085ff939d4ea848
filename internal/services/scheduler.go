package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/repository"
	"github.com/billyribeiro-ux/cognition-os/internal/streak"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// Scheduler applies the streak daily check to every persisted streak
// record at day rollover, so a user who never opens the app still loses
// a streak they stopped feeding.
type Scheduler struct {
	log   *zap.Logger
	clock timeutil.Clock

	lastChecked string
}

func NewScheduler(log *zap.Logger, clock timeutil.Clock) *Scheduler {
	return &Scheduler{
		log:   log,
		clock: clock,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting daily streak scheduler...")
	s.lastChecked = s.clock.Today()
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			today := s.clock.Today()
			if today == s.lastChecked {
				continue
			}
			s.lastChecked = today
			s.runDailyCheck()
		}
	}()
}

func (s *Scheduler) runDailyCheck() {
	s.log.Info("Running streak daily check", zap.String("date", s.clock.Today()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	entries, err := repository.ListEntriesByKey(ctx, streak.StorageKey)
	if err != nil {
		s.log.Error("Failed to list streak records", zap.Error(err))
		return
	}

	broken := 0
	for _, entry := range entries {
		tracker := streak.NewTracker(s.clock, repository.NewUserKV(entry.UserID))
		before := tracker.Record().CurrentStreak
		tracker.CheckDaily()
		if tracker.Record().CurrentStreak < before {
			broken++
			s.log.Debug("Streak broken by scheduler",
				zap.Uint("userID", entry.UserID),
				zap.Int("lostStreak", before),
			)
		}
	}

	s.log.Info("Streak daily check complete",
		zap.Int("records", len(entries)),
		zap.Int("broken", broken),
	)
}
