package protocol

// MaxLevel is the highest curriculum level.
const MaxLevel = 5

// LevelConfig describes one of the five curriculum stages.
type LevelConfig struct {
	Name           string   `json:"name"`
	DaysRequired   int      `json:"daysRequired"`
	Description    string   `json:"description"`
	UnlockCriteria string   `json:"unlockCriteria"`
	Features       []string `json:"features"`
}

var levelConfigs = map[int]LevelConfig{
	1: {
		Name:           "Foundation",
		DaysRequired:   21,
		Description:    "Build the daily habit. Pomodoro technique, hydration, sleep hygiene.",
		UnlockCriteria: "Complete onboarding",
		Features: []string{
			"Pomodoro timer",
			"Morning activation",
			"Evening consolidation",
			"Wind-down protocol",
			"Hydration tracking",
		},
	},
	2: {
		Name:           "Attention",
		DaysRequired:   21,
		Description:    "Train sustained attention. Meditation, single-tasking, task-switch tracking.",
		UnlockCriteria: "21 consecutive days at Level 1",
		Features: []string{
			"Meditation sessions",
			"Task-switch counter",
			"Breath counting exercise",
			"Single-task enforcement",
		},
	},
	3: {
		Name:           "Working Memory",
		DaysRequired:   28,
		Description:    "Expand working memory. Dual N-Back, spaced repetition, cold exposure.",
		UnlockCriteria: "21 consecutive days at Level 2",
		Features: []string{
			"Dual N-Back training",
			"Spaced repetition system",
			"Cold exposure protocol",
			"Cognitive benchmarking",
		},
	},
	4: {
		Name:           "Advanced",
		DaysRequired:   28,
		Description:    "Optimize performance. Exercise for BDNF, visualization, bilateral training.",
		UnlockCriteria: "28 consecutive days at Level 3",
		Features: []string{
			"Aerobic exercise protocol",
			"Non-dominant hand practice",
			"Visualization training",
			"Advanced meditation (open monitoring)",
		},
	},
	5: {
		Name:           "Mastery",
		DaysRequired:   28,
		Description:    "Full integration. All protocols combined at peak intensity.",
		UnlockCriteria: "28 consecutive days at Level 4",
		Features: []string{
			"Feynman technique",
			"Extended meditation (25 min)",
			"Full protocol integration",
			"Teaching/mentoring component",
		},
	},
}

// LevelFor returns the configuration for a curriculum level. Levels
// outside [1, MaxLevel] fall back to level 1.
func LevelFor(level int) LevelConfig {
	if cfg, ok := levelConfigs[level]; ok {
		return cfg
	}
	return levelConfigs[1]
}
