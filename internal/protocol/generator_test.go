package protocol

import (
	"testing"

	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

func testProfile(mutate func(*Profile)) Profile {
	p := Profile{
		ScheduleType:      ScheduleFixed,
		WakeTime:          "06:00",
		BedTime:           "22:00",
		WorkStart:         "08:00",
		WorkEnd:           "17:00",
		Commitment:        CommitmentStandard,
		MeditationLevel:   ExperienceNever,
		ColdExposureLevel: ExperienceNever,
		ExerciseLevel:     "sometimes",
		CaffeineCups:      2,
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func itemTypes(items []Item) map[ItemType]int {
	counts := make(map[ItemType]int)
	for _, it := range items {
		counts[it.Type]++
	}
	return counts
}

func TestGenerateLevel1(t *testing.T) {
	items := Generate(testProfile(nil), 1)
	if len(items) == 0 {
		t.Fatal("expected a non-empty schedule")
	}

	types := itemTypes(items)
	for _, want := range []ItemType{ItemActivation, ItemPomodoro, ItemConsolidation, ItemWindDown} {
		if types[want] == 0 {
			t.Errorf("level 1 schedule missing %q", want)
		}
	}
	for _, excluded := range []ItemType{ItemMeditation, ItemDrill, ItemColdExposure} {
		if types[excluded] != 0 {
			t.Errorf("level 1 schedule should not contain %q", excluded)
		}
	}
}

func TestGenerateLevel2AddsMeditation(t *testing.T) {
	types := itemTypes(Generate(testProfile(nil), 2))
	if types[ItemMeditation] == 0 {
		t.Fatal("level 2 schedule missing meditation")
	}
	if types[ItemDrill] != 0 {
		t.Fatal("level 2 schedule should not contain the drill")
	}
}

func TestGenerateLevel3AddsDrillAndReview(t *testing.T) {
	types := itemTypes(Generate(testProfile(nil), 3))
	if types[ItemDrill] == 0 {
		t.Fatal("level 3 schedule missing drill")
	}
	if types[ItemSRSReview] == 0 {
		t.Fatal("level 3 schedule missing SRS review")
	}
}

func TestGenerateColdExposureRequiresExperience(t *testing.T) {
	withExp := itemTypes(Generate(testProfile(func(p *Profile) { p.ColdExposureLevel = ExperienceTried }), 3))
	if withExp[ItemColdExposure] == 0 {
		t.Fatal("expected cold exposure for a user with prior experience")
	}

	without := itemTypes(Generate(testProfile(nil), 3))
	if without[ItemColdExposure] != 0 {
		t.Fatal("expected no cold exposure for a user who never tried it")
	}
}

func TestGenerateLevel4AddsAdvancedItems(t *testing.T) {
	types := itemTypes(Generate(testProfile(nil), 4))
	for _, want := range []ItemType{ItemExercise, ItemVisualization, ItemNonDominant} {
		if types[want] == 0 {
			t.Errorf("level 4 schedule missing %q", want)
		}
	}
}

func TestGeneratePomodoroCountPerCommitment(t *testing.T) {
	tests := []struct {
		commitment CommitmentLevel
		want       int
	}{
		{CommitmentStandard, 4},
		{CommitmentAggressive, 6},
		{CommitmentElite, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.commitment), func(t *testing.T) {
			items := Generate(testProfile(func(p *Profile) { p.Commitment = tt.commitment }), 1)
			if got := itemTypes(items)[ItemPomodoro]; got != tt.want {
				t.Fatalf("pomodoro count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateAllItemsStartUpcoming(t *testing.T) {
	for _, it := range Generate(testProfile(nil), 3) {
		if it.Status != StatusUpcoming {
			t.Fatalf("item %s status = %q, want upcoming", it.ID, it.Status)
		}
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	items := Generate(testProfile(nil), 5)
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate item ID %q", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestGenerateIDCounterResetsPerCall(t *testing.T) {
	first := Generate(testProfile(nil), 1)
	second := Generate(testProfile(nil), 1)
	if first[0].ID != second[0].ID {
		t.Fatalf("ID numbering did not reset: %q vs %q", first[0].ID, second[0].ID)
	}
}

func TestGenerateSortedByTime(t *testing.T) {
	items := Generate(testProfile(nil), 4)
	for i := 1; i < len(items); i++ {
		prev := timeutil.TimeToMinutes(items[i-1].Time)
		curr := timeutil.TimeToMinutes(items[i].Time)
		if prev > curr {
			t.Fatalf("items out of order: %q (%d) before %q (%d)", items[i-1].Time, prev, items[i].Time, curr)
		}
	}
}

func TestGenerateFlexibleScheduleUsesTokens(t *testing.T) {
	items := Generate(testProfile(func(p *Profile) { p.ScheduleType = ScheduleFlexible }), 1)
	for _, it := range items {
		if it.Type == ItemActivation {
			if it.Time != "wake+0" {
				t.Fatalf("activation time = %q, want wake+0", it.Time)
			}
			return
		}
	}
	t.Fatal("no activation item found")
}

func TestGenerateFixedScheduleUsesClockTimes(t *testing.T) {
	items := Generate(testProfile(nil), 1)
	for _, it := range items {
		if !timeutil.IsClockTime(it.Time) {
			t.Fatalf("item %s time %q is not an absolute clock time", it.ID, it.Time)
		}
	}
}

func TestGenerateConsolidationDurationGrowsWithLevel(t *testing.T) {
	find := func(items []Item) Item {
		for _, it := range items {
			if it.Type == ItemConsolidation {
				return it
			}
		}
		t.Fatal("no consolidation item")
		return Item{}
	}

	l1 := find(Generate(testProfile(nil), 1))
	l3 := find(Generate(testProfile(nil), 3))
	l5 := find(Generate(testProfile(nil), 5))
	if l1.Duration != 10 || l3.Duration != 15 || l5.Duration != 30 {
		t.Fatalf("consolidation durations = %d/%d/%d, want 10/15/30", l1.Duration, l3.Duration, l5.Duration)
	}
}

func TestGenerateDefaultsForEmptyProfile(t *testing.T) {
	items := Generate(Profile{ScheduleType: ScheduleFixed}, 1)
	for _, it := range items {
		if it.Type == ItemActivation && it.Time != "06:00" {
			t.Fatalf("activation time = %q, want default wake 06:00", it.Time)
		}
		if it.Type == ItemWindDown && it.Time != "21:30" {
			t.Fatalf("wind-down time = %q, want 21:30 from default bed 22:00", it.Time)
		}
	}
}

func TestGenerateBreaksInterleaved(t *testing.T) {
	items := Generate(testProfile(func(p *Profile) { p.Commitment = CommitmentElite }), 1)
	types := itemTypes(items)
	if types[ItemBreak] != types[ItemPomodoro]-1 {
		t.Fatalf("breaks = %d, want %d", types[ItemBreak], types[ItemPomodoro]-1)
	}

	long := 0
	for _, it := range items {
		if it.Type == ItemBreak && it.Duration == LongBreakDuration {
			long++
		}
	}
	// Elite has 8 pomodoros and 7 breaks; the 4th is the only long one.
	if long != 1 {
		t.Fatalf("long breaks = %d, want 1", long)
	}
}

func TestGenerateMeditationDurationTable(t *testing.T) {
	tests := []struct {
		level int
		exp   Experience
		want  int
	}{
		{2, ExperienceNever, 5},
		{2, ExperienceTried, 10},
		{2, ExperienceRegular, 15},
		{3, ExperienceNever, 10},
		{3, ExperienceTried, 15},
		{3, ExperienceRegular, 20},
		{4, ExperienceNever, 20},
	}

	for _, tt := range tests {
		items := Generate(testProfile(func(p *Profile) { p.MeditationLevel = tt.exp }), tt.level)
		for _, it := range items {
			if it.Type == ItemMeditation {
				if it.Duration != tt.want {
					t.Errorf("level %d %s meditation = %d min, want %d", tt.level, tt.exp, it.Duration, tt.want)
				}
				break
			}
		}
	}
}

func TestGenerateExerciseBeforeFirstPeakWindow(t *testing.T) {
	items := Generate(testProfile(func(p *Profile) {
		p.PeakHours = []TimeRange{{Start: "14:00", End: "16:00"}}
	}), 4)
	for _, it := range items {
		if it.Type == ItemExercise {
			if it.Time != "12:30" {
				t.Fatalf("exercise time = %q, want 12:30 (90 min before peak)", it.Time)
			}
			return
		}
	}
	t.Fatal("no exercise item found")
}
