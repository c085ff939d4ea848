package streak

import (
	"testing"
	"time"

	"github.com/billyribeiro-ux/cognition-os/internal/storage"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

func clockAt(date string) timeutil.FixedClock {
	t, err := time.Parse(timeutil.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return timeutil.FixedClock{Time: t}
}

func TestNewTrackerDefaults(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-01"), storage.NewMemory())
	rec := tr.Record()
	if rec.CurrentLevel != 1 || rec.DayInLevel != 1 {
		t.Fatalf("default record = %+v, want level 1 day 1", rec)
	}
	if rec.LevelStartDate != "2026-06-01" {
		t.Fatalf("levelStartDate = %q, want today", rec.LevelStartDate)
	}
	if rec.CurrentStreak != 0 || rec.TotalRestarts != 0 {
		t.Fatalf("counters not zero: %+v", rec)
	}
}

func TestIncrementDay(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-01"), storage.NewMemory())

	tr.IncrementDay()
	rec := tr.Record()
	if rec.CurrentStreak != 1 || rec.DayInLevel != 2 {
		t.Fatalf("after increment: %+v", rec)
	}
	if rec.LongestStreak != 1 {
		t.Fatalf("longestStreak = %d, want 1", rec.LongestStreak)
	}
	if rec.LastCompletedDate != "2026-06-01" {
		t.Fatalf("lastCompletedDate = %q, want today", rec.LastCompletedDate)
	}
}

func TestLongestStreakOnlyGrowsWhenExceeded(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-01"), storage.NewMemory())
	tr.SetRecord(Record{CurrentStreak: 2, LongestStreak: 10, CurrentLevel: 1, DayInLevel: 3})

	tr.IncrementDay()
	if got := tr.Record().LongestStreak; got != 10 {
		t.Fatalf("longestStreak = %d, want 10 untouched", got)
	}

	tr.SetRecord(Record{CurrentStreak: 10, LongestStreak: 10, CurrentLevel: 1, DayInLevel: 11})
	tr.IncrementDay()
	if got := tr.Record().LongestStreak; got != 11 {
		t.Fatalf("longestStreak = %d, want 11", got)
	}
}

func TestBreakStreak(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-10"), storage.NewMemory())
	tr.SetRecord(Record{
		CurrentStreak:  7,
		LongestStreak:  7,
		CurrentLevel:   2,
		DayInLevel:     7,
		LevelStartDate: "2026-06-03",
		TotalRestarts:  1,
	})

	tr.BreakStreak()
	rec := tr.Record()
	if rec.CurrentStreak != 0 || rec.DayInLevel != 0 {
		t.Fatalf("counters not zeroed: %+v", rec)
	}
	if rec.TotalRestarts != 2 {
		t.Fatalf("totalRestarts = %d, want 2", rec.TotalRestarts)
	}
	if rec.CurrentLevel != 2 {
		t.Fatalf("level changed on break: %d", rec.CurrentLevel)
	}
	if rec.LevelStartDate != "2026-06-10" {
		t.Fatalf("levelStartDate = %q, want today", rec.LevelStartDate)
	}
	if rec.LongestStreak != 7 {
		t.Fatalf("longestStreak = %d, want 7 preserved", rec.LongestStreak)
	}
}

func TestLevelUp(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-10"), storage.NewMemory())
	tr.SetRecord(Record{CurrentLevel: 2, DayInLevel: 21, CurrentStreak: 21, LevelStartDate: "2026-05-20"})

	tr.LevelUp()
	rec := tr.Record()
	if rec.CurrentLevel != 3 || rec.DayInLevel != 0 {
		t.Fatalf("after level up: %+v", rec)
	}
	if rec.LevelStartDate != "2026-06-10" {
		t.Fatalf("levelStartDate = %q, want today", rec.LevelStartDate)
	}
	if rec.CurrentStreak != 21 {
		t.Fatalf("currentStreak = %d, want 21 preserved", rec.CurrentStreak)
	}
}

func TestLevelUpCapsAtMax(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-10"), storage.NewMemory())
	tr.SetRecord(Record{CurrentLevel: 5, DayInLevel: 30})

	tr.LevelUp()
	rec := tr.Record()
	if rec.CurrentLevel != 5 || rec.DayInLevel != 30 {
		t.Fatalf("top level record mutated: %+v", rec)
	}
}

func TestCheckDaily(t *testing.T) {
	tests := []struct {
		name          string
		lastCompleted string
		wantBroken    bool
	}{
		{name: "no history", lastCompleted: "", wantBroken: false},
		{name: "already completed today", lastCompleted: "2026-06-10", wantBroken: false},
		{name: "completed yesterday", lastCompleted: "2026-06-09", wantBroken: false},
		{name: "missed one day", lastCompleted: "2026-06-08", wantBroken: true},
		{name: "missed a week", lastCompleted: "2026-06-03", wantBroken: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(clockAt("2026-06-10"), storage.NewMemory())
			tr.SetRecord(Record{
				CurrentStreak:     5,
				LongestStreak:     5,
				CurrentLevel:      2,
				DayInLevel:        5,
				LastCompletedDate: tt.lastCompleted,
			})

			tr.CheckDaily()
			rec := tr.Record()
			if tt.wantBroken {
				if rec.CurrentStreak != 0 || rec.TotalRestarts != 1 {
					t.Fatalf("expected broken streak, got %+v", rec)
				}
			} else {
				if rec.CurrentStreak != 5 || rec.TotalRestarts != 0 {
					t.Fatalf("streak should survive, got %+v", rec)
				}
			}
		})
	}
}

func TestDaysRequiredPerLevel(t *testing.T) {
	want := map[int]int{1: 21, 2: 21, 3: 28, 4: 28, 5: 28}
	for level, days := range want {
		tr := NewTracker(clockAt("2026-06-10"), storage.NewMemory())
		tr.SetRecord(Record{CurrentLevel: level})
		if got := tr.DaysRequired(); got != days {
			t.Errorf("level %d daysRequired = %d, want %d", level, got, days)
		}
	}
}

func TestLevelProgressAndRemaining(t *testing.T) {
	tr := NewTracker(clockAt("2026-06-10"), storage.NewMemory())
	tr.SetRecord(Record{CurrentLevel: 1, DayInLevel: 7})

	// 7 of 21 days is a third of the level.
	if got := tr.LevelProgress(); got != 33 {
		t.Fatalf("LevelProgress = %d, want 33", got)
	}
	if got := tr.DaysRemaining(); got != 14 {
		t.Fatalf("DaysRemaining = %d, want 14", got)
	}
	if tr.ReadyToLevelUp() {
		t.Fatal("not ready at day 7 of 21")
	}

	tr.SetRecord(Record{CurrentLevel: 1, DayInLevel: 21})
	if !tr.ReadyToLevelUp() {
		t.Fatal("ready at day 21 of 21")
	}

	tr.SetRecord(Record{CurrentLevel: 5, DayInLevel: 99})
	if tr.ReadyToLevelUp() {
		t.Fatal("top level never levels up")
	}
}

func TestTrackerPersistsAcrossInstances(t *testing.T) {
	kv := storage.NewMemory()
	tr := NewTracker(clockAt("2026-06-10"), kv)
	tr.IncrementDay()

	reloaded := NewTracker(clockAt("2026-06-11"), kv)
	rec := reloaded.Record()
	if rec.CurrentStreak != 1 || rec.LastCompletedDate != "2026-06-10" {
		t.Fatalf("reloaded record = %+v", rec)
	}
}

func TestCorruptBlobStartsFresh(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(StorageKey, "][")

	tr := NewTracker(clockAt("2026-06-10"), kv)
	rec := tr.Record()
	if rec.CurrentLevel != 1 || rec.DayInLevel != 1 {
		t.Fatalf("expected default record, got %+v", rec)
	}
}
