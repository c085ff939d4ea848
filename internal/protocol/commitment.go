package protocol

// Focus-block timing constants, in minutes.
const (
	PomodoroDuration  = 25
	BreakDuration     = 5
	LongBreakDuration = 15
	PomodorosPerBlock = 4
)

// DailyWaterTargetOz is the hydration goal surfaced on the day view.
const DailyWaterTargetOz = 80

// StreakCompletionThreshold is the required-item completion percentage
// above which a day counts toward the streak.
const StreakCompletionThreshold = 90

// CommitmentLevel is the user-selected intensity preset.
type CommitmentLevel string

const (
	CommitmentStandard   CommitmentLevel = "standard"
	CommitmentAggressive CommitmentLevel = "aggressive"
	CommitmentElite      CommitmentLevel = "elite"
)

// CommitmentConfig holds the per-tier training volume constants. Static
// configuration, never mutated at runtime.
type CommitmentConfig struct {
	Label             string  `json:"label"`
	PomodorosPerDay   int     `json:"pomodorosPerDay"`
	MeditationMinutes int     `json:"meditationMinutes"`
	DrillMinutes      int     `json:"drillMinutes"`
	ExercisePerWeek   int     `json:"exercisePerWeek"`
	TotalHoursPerDay  float64 `json:"totalHoursPerDay"`
	Description       string  `json:"description"`
}

var commitmentConfigs = map[CommitmentLevel]CommitmentConfig{
	CommitmentStandard: {
		Label:             "Standard",
		PomodorosPerDay:   4,
		MeditationMinutes: 10,
		DrillMinutes:      15,
		ExercisePerWeek:   2,
		TotalHoursPerDay:  3.5,
		Description:       "For those starting out",
	},
	CommitmentAggressive: {
		Label:             "Aggressive",
		PomodorosPerDay:   6,
		MeditationMinutes: 15,
		DrillMinutes:      20,
		ExercisePerWeek:   4,
		TotalHoursPerDay:  5,
		Description:       "For those ready to commit",
	},
	CommitmentElite: {
		Label:             "Elite",
		PomodorosPerDay:   8,
		MeditationMinutes: 20,
		DrillMinutes:      25,
		ExercisePerWeek:   5,
		TotalHoursPerDay:  6.5,
		Description:       "For those who are all-in",
	},
}

// ConfigFor returns the commitment configuration for a tier. Unknown
// tiers fall back to the standard preset.
func ConfigFor(level CommitmentLevel) CommitmentConfig {
	if cfg, ok := commitmentConfigs[level]; ok {
		return cfg
	}
	return commitmentConfigs[CommitmentStandard]
}
