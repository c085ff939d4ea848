package protocol

import (
	"fmt"
	"math"
	"sort"

	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// Fallback anchors used when the profile omits a field. Substitution is
// silent; a partially filled profile still yields a full schedule.
const (
	defaultWakeTime  = "06:00"
	defaultBedTime   = "22:00"
	defaultWorkStart = "08:00"
)

// generator threads the per-call ID counter through one Generate run so
// repeated calls always restart numbering at protocol-1.
type generator struct {
	profile Profile
	level   int
	isFixed bool
	counter int
}

// Generate builds the day's ordered schedule for a profile at the given
// curriculum level. The output is sorted by resolved minute-of-day, with
// relative tokens ordered by their signed offset. IDs are unique within
// one call's output.
func Generate(profile Profile, level int) []Item {
	g := &generator{
		profile: profile,
		level:   level,
		isFixed: profile.ScheduleType == ScheduleFixed,
	}
	return g.run()
}

func (g *generator) nextID() string {
	g.counter++
	return fmt.Sprintf("protocol-%d", g.counter)
}

// at returns an absolute time for fixed schedules and an anchor token
// otherwise.
func (g *generator) at(anchor, base string, offset int) string {
	if g.isFixed {
		return timeutil.AddMinutes(base, offset)
	}
	if offset < 0 {
		return fmt.Sprintf("%s-%d", anchor, -offset)
	}
	return fmt.Sprintf("%s+%d", anchor, offset)
}

func (g *generator) run() []Item {
	wake := g.profile.WakeTime
	if wake == "" {
		wake = defaultWakeTime
	}
	bed := g.profile.BedTime
	if bed == "" {
		bed = defaultBedTime
	}
	workStart := g.profile.WorkStart
	if workStart == "" {
		workStart = defaultWorkStart
	}
	config := ConfigFor(g.profile.Commitment)

	var schedule []Item

	// Morning activation opens every level.
	schedule = append(schedule, Item{
		ID:          g.nextID(),
		Time:        g.at("wake", wake, 0),
		Type:        ItemActivation,
		Duration:    5,
		Title:       "Morning Activation",
		Description: "16oz water, 10 deep breaths (4-7-8), set intention",
		Icon:        "☀️",
		Level:       1,
		Required:    true,
		Status:      StatusUpcoming,
	})

	nextTime := 5

	if g.level >= 3 && g.profile.ColdExposureLevel != ExperienceNever && g.profile.ColdExposureLevel != "" {
		coldDuration := coldExposureMinutes(g.level)
		ceiled := int(math.Ceil(coldDuration))
		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        g.at("wake", wake, nextTime),
			Type:        ItemColdExposure,
			Duration:    ceiled,
			Title:       "Cold Exposure",
			Description: fmt.Sprintf("%v min cold shower. Breathe through it.", coldDuration),
			Icon:        "🧊",
			Level:       3,
			Required:    true,
			Status:      StatusUpcoming,
		})
		nextTime += ceiled + 1
	}

	if g.level >= 2 {
		medDuration := meditationMinutes(g.profile, g.level)
		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        g.at("wake", wake, nextTime),
			Type:        ItemMeditation,
			Duration:    medDuration,
			Title:       "Meditation",
			Description: meditationDescription(g.level),
			Icon:        "🧘",
			Level:       2,
			Required:    true,
			Status:      StatusUpcoming,
		})
		nextTime += medDuration + 2
	}

	if g.level >= 3 {
		drillDuration := 20
		if g.level >= 4 {
			drillDuration = 25
		}
		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        g.at("wake", wake, nextTime),
			Type:        ItemDrill,
			Duration:    drillDuration,
			Title:       "Dual N-Back Training",
			Description: fmt.Sprintf("%d min adaptive training", drillDuration),
			Icon:        "🧠",
			Level:       3,
			Required:    true,
			Status:      StatusUpcoming,
		})
		nextTime += drillDuration + 2

		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        g.at("wake", wake, nextTime),
			Type:        ItemSRSReview,
			Duration:    15,
			Title:       "Spaced Repetition Review",
			Description: "Review due cards",
			Icon:        "📚",
			Level:       3,
			Required:    true,
			Status:      StatusUpcoming,
		})
	}

	if g.level >= 4 {
		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        g.at("work", workStart, -15),
			Type:        ItemVisualization,
			Duration:    10,
			Title:       "Visualization",
			Description: "Mental rehearsal of peak performance scenarios",
			Icon:        "🎯",
			Level:       4,
			Required:    true,
			Status:      StatusUpcoming,
		})
	}

	// Focus blocks run back-to-back from work start; the two halves are
	// labeled Block 1 and Block 2 for display only.
	totalPomodoros := config.PomodorosPerDay
	half := (totalPomodoros + 1) / 2

	for i := 0; i < totalPomodoros; i++ {
		blockNum := 1
		pomInBlock := i + 1
		blockSize := half
		if i >= half {
			blockNum = 2
			pomInBlock = i - half + 1
			blockSize = totalPomodoros - half
		}
		offsetMin := i * (PomodoroDuration + BreakDuration)

		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        g.at("work", workStart, offsetMin),
			Type:        ItemPomodoro,
			Duration:    PomodoroDuration,
			Title:       fmt.Sprintf("Pomodoro %d of %d", i+1, totalPomodoros),
			Description: fmt.Sprintf("Block %d: %d/%d (%d min focus)", blockNum, pomInBlock, blockSize, PomodoroDuration),
			Icon:        "🎯",
			Level:       1,
			Required:    true,
			Status:      StatusUpcoming,
		})

		// Break after each pomodoro except the last; every 4th is long.
		if i < totalPomodoros-1 {
			isLong := (i+1)%PomodorosPerBlock == 0
			breakDur := BreakDuration
			title := "Short Break"
			desc := "Stand up. Stretch. Hydrate. 💧"
			icon := "💧"
			if isLong {
				breakDur = LongBreakDuration
				title = "Long Break"
				desc = "Walk, stretch, hydrate. Reset your focus."
				icon = "🚶"
			}
			schedule = append(schedule, Item{
				ID:          g.nextID(),
				Time:        g.at("work", workStart, offsetMin+PomodoroDuration),
				Type:        ItemBreak,
				Duration:    breakDur,
				Title:       title,
				Description: desc,
				Icon:        icon,
				Level:       1,
				Required:    false,
				Status:      StatusUpcoming,
			})
		}
	}

	if g.level >= 4 {
		var exerciseTime string
		if len(g.profile.PeakHours) > 0 && g.isFixed {
			exerciseTime = timeutil.SubtractMinutes(g.profile.PeakHours[0].Start, 90)
		} else {
			lastPomOffset := totalPomodoros * (PomodoroDuration + BreakDuration)
			exerciseTime = g.at("work", workStart, lastPomOffset+15)
		}
		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        exerciseTime,
			Type:        ItemExercise,
			Duration:    30,
			Title:       "Aerobic Exercise",
			Description: "30 min at 60-70% HRmax. Walk, jog, cycle, or swim.",
			Icon:        "🏃",
			Level:       4,
			Required:    true,
			Status:      StatusUpcoming,
		})

		ndTime := g.profile.LunchBreakTime
		if ndTime == "" {
			if g.isFixed {
				ndTime = "12:00"
			} else {
				ndTime = "work+180"
			}
		}
		schedule = append(schedule, Item{
			ID:          g.nextID(),
			Time:        ndTime,
			Type:        ItemNonDominant,
			Duration:    10,
			Title:       "Non-Dominant Hand Practice",
			Description: "Writing, daily tasks with non-dominant hand",
			Icon:        "✋",
			Level:       4,
			Required:    true,
			Status:      StatusUpcoming,
		})
	}

	consolDuration := 10
	switch {
	case g.level >= 5:
		consolDuration = 30
	case g.level >= 3:
		consolDuration = 15
	}
	schedule = append(schedule, Item{
		ID:          g.nextID(),
		Time:        g.at("sleep", bed, -60),
		Type:        ItemConsolidation,
		Duration:    consolDuration,
		Title:       "Evening Consolidation",
		Description: consolidationDescription(g.level),
		Icon:        "📝",
		Level:       1,
		Required:    true,
		Status:      StatusUpcoming,
	})

	schedule = append(schedule, Item{
		ID:          g.nextID(),
		Time:        g.at("sleep", bed, -30),
		Type:        ItemWindDown,
		Duration:    15,
		Title:       "Wind-Down",
		Description: "Blue light filter, light reading, 4-7-8 breathing",
		Icon:        "🌙",
		Level:       1,
		Required:    true,
		Status:      StatusUpcoming,
	})

	sort.SliceStable(schedule, func(a, b int) bool {
		return timeutil.TimeToMinutes(schedule[a].Time) < timeutil.TimeToMinutes(schedule[b].Time)
	})
	return schedule
}

func coldExposureMinutes(level int) float64 {
	switch level {
	case 3:
		return 2
	case 4:
		return 2.5
	default:
		return 3
	}
}

func meditationMinutes(profile Profile, level int) int {
	exp := profile.MeditationLevel
	if exp == "" {
		exp = ExperienceNever
	}
	switch level {
	case 2:
		switch exp {
		case ExperienceNever:
			return 5
		case ExperienceTried:
			return 10
		default:
			return 15
		}
	case 3:
		switch exp {
		case ExperienceNever:
			return 10
		case ExperienceTried:
			return 15
		default:
			return 20
		}
	default:
		return 20
	}
}

func meditationDescription(level int) string {
	switch {
	case level <= 2:
		return "Focused attention meditation. Count breaths 1-10, restart on distraction."
	case level <= 3:
		return "Focused attention (10 min) + open monitoring (5 min)."
	default:
		return "Focused attention (10 min) + open monitoring (10-15 min)."
	}
}

func consolidationDescription(level int) string {
	switch {
	case level <= 2:
		return "Journal: 3 key learnings, 1 improvement for tomorrow."
	case level <= 4:
		return "Journal + create SRS cards from today's learnings."
	default:
		return "Feynman technique: teach today's key concept in simple terms."
	}
}
