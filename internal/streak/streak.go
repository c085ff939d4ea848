// Package streak tracks the daily completion streak and gates movement
// through the five curriculum levels.
package streak

import (
	"math"
	"time"

	"github.com/billyribeiro-ux/cognition-os/internal/protocol"
	"github.com/billyribeiro-ux/cognition-os/internal/storage"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// StorageKey is where the full streak record is persisted as one JSON blob.
const StorageKey = "cognition-os-streak"

// Record is the full progression state. CurrentLevel stays within
// [1, protocol.MaxLevel]; LongestStreak never drops below CurrentStreak.
type Record struct {
	CurrentStreak     int    `json:"currentStreak"`
	LongestStreak     int    `json:"longestStreak"`
	CurrentLevel      int    `json:"currentLevel"`
	DayInLevel        int    `json:"dayInLevel"`
	LevelStartDate    string `json:"levelStartDate"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"`
	TotalRestarts     int    `json:"totalRestarts"`
}

// Tracker owns the streak record and is its sole mutator. Every mutation
// persists the record as a best-effort side effect.
type Tracker struct {
	clock timeutil.Clock
	kv    storage.KV
	rec   Record
}

// NewTracker loads the persisted record. A missing or corrupt blob starts
// a fresh level-1 record.
func NewTracker(clock timeutil.Clock, kv storage.KV) *Tracker {
	t := &Tracker{clock: clock, kv: kv}
	var rec Record
	if storage.LoadJSON(kv, StorageKey, &rec) {
		t.rec = rec
	} else {
		t.rec = defaultRecord(clock)
	}
	return t
}

func defaultRecord(clock timeutil.Clock) Record {
	return Record{
		CurrentLevel:   1,
		DayInLevel:     1,
		LevelStartDate: clock.Today(),
	}
}

func (t *Tracker) persist() {
	_ = storage.SaveJSON(t.kv, StorageKey, t.rec)
}

// Record returns a copy of the current state.
func (t *Tracker) Record() Record {
	return t.rec
}

// SetRecord replaces the state wholesale, used by import and demo seeding.
func (t *Tracker) SetRecord(rec Record) {
	t.rec = rec
	t.persist()
}

// IncrementDay marks today's required items as completed. The host calls
// this once per day when completion crosses the threshold.
func (t *Tracker) IncrementDay() {
	t.rec.CurrentStreak++
	t.rec.DayInLevel++
	if t.rec.CurrentStreak > t.rec.LongestStreak {
		t.rec.LongestStreak = t.rec.CurrentStreak
	}
	t.rec.LastCompletedDate = t.clock.Today()
	t.persist()
}

// BreakStreak zeroes the running counters and restarts the level clock.
// The level itself is kept.
func (t *Tracker) BreakStreak() {
	t.rec.CurrentStreak = 0
	t.rec.DayInLevel = 0
	t.rec.TotalRestarts++
	t.rec.LevelStartDate = t.clock.Today()
	t.persist()
}

// LevelUp advances to the next curriculum level. A no-op at the top level.
func (t *Tracker) LevelUp() {
	if t.rec.CurrentLevel >= protocol.MaxLevel {
		return
	}
	t.rec.CurrentLevel++
	t.rec.DayInLevel = 0
	t.rec.LevelStartDate = t.clock.Today()
	t.persist()
}

// CheckDaily runs the first-check-of-the-day rule. A last completion more
// than one calendar day in the past breaks the streak; exactly one day
// (yesterday) keeps it alive.
func (t *Tracker) CheckDaily() {
	last := t.rec.LastCompletedDate
	if last == "" {
		return
	}
	today := t.clock.Today()
	if last == today {
		return
	}
	if daysBetween(last, today) > 1 {
		t.BreakStreak()
	}
}

// daysBetween returns the calendar-day distance between two dates.
// Unparseable dates count as zero days apart, which keeps the streak.
func daysBetween(from, to string) int {
	a, err := time.Parse(timeutil.DateLayout, from)
	if err != nil {
		return 0
	}
	b, err := time.Parse(timeutil.DateLayout, to)
	if err != nil {
		return 0
	}
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// DaysRequired returns how many consecutive days the current level needs
// before the host should invoke LevelUp.
func (t *Tracker) DaysRequired() int {
	return protocol.LevelFor(t.rec.CurrentLevel).DaysRequired
}

// LevelName returns the display name of the current level.
func (t *Tracker) LevelName() string {
	return protocol.LevelFor(t.rec.CurrentLevel).Name
}

// LevelProgress is the percentage of the current level completed.
func (t *Tracker) LevelProgress() int {
	required := t.DaysRequired()
	if required == 0 {
		return 0
	}
	return int(math.Round(float64(t.rec.DayInLevel) / float64(required) * 100))
}

// DaysRemaining returns how many days are left in the current level.
func (t *Tracker) DaysRemaining() int {
	return t.DaysRequired() - t.rec.DayInLevel
}

// ReadyToLevelUp reports whether the current level's day requirement has
// been met.
func (t *Tracker) ReadyToLevelUp() bool {
	return t.rec.CurrentLevel < protocol.MaxLevel && t.rec.DayInLevel >= t.DaysRequired()
}
