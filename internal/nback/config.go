package nback

import "time"

// Defaults mirroring the tuned production values.
const (
	DefaultRounds       = 20
	DefaultRoundInterval = 3000 * time.Millisecond
	StimulusDuration    = 500 * time.Millisecond
	ResponseWindow      = 2500 * time.Millisecond

	defaultMatchProbability = 0.3
	defaultGridSize         = 3

	DefaultLevelUpThreshold   = 80
	DefaultLevelDownThreshold = 50
	DefaultHysteresisWindow   = 3
	DefaultMinLevel           = 2
	DefaultMaxLevel           = 9

	defaultCountdownSeconds = 3

	// StorageKey is where the adaptive state blob is persisted.
	StorageKey = "cognition-os-nback"
)

// defaultSymbols is the stimulus alphabet. The letters are chosen to be
// phonetically distinct when spoken.
var defaultSymbols = []string{"C", "H", "K", "L", "Q", "R", "S", "T"}

// Config carries the drill tunables. Zero values are replaced by the
// defaults above, so Config{} behaves like DefaultConfig().
type Config struct {
	Symbols          []string
	GridSize         int
	MatchProbability float64
	Rounds           int
	RoundInterval    time.Duration
	CountdownSeconds int

	LevelUpThreshold   int
	LevelDownThreshold int
	HysteresisWindow   int
	MinLevel           int
	MaxLevel           int
}

// DefaultConfig returns the production drill configuration.
func DefaultConfig() Config {
	return Config{
		Symbols:            defaultSymbols,
		GridSize:           defaultGridSize,
		MatchProbability:   defaultMatchProbability,
		Rounds:             DefaultRounds,
		RoundInterval:      DefaultRoundInterval,
		CountdownSeconds:   defaultCountdownSeconds,
		LevelUpThreshold:   DefaultLevelUpThreshold,
		LevelDownThreshold: DefaultLevelDownThreshold,
		HysteresisWindow:   DefaultHysteresisWindow,
		MinLevel:           DefaultMinLevel,
		MaxLevel:           DefaultMaxLevel,
	}
}

// normalized fills in zero fields with defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if len(c.Symbols) == 0 {
		c.Symbols = def.Symbols
	}
	if c.GridSize <= 0 {
		c.GridSize = def.GridSize
	}
	if c.MatchProbability <= 0 {
		c.MatchProbability = def.MatchProbability
	}
	if c.Rounds <= 0 {
		c.Rounds = def.Rounds
	}
	if c.RoundInterval <= 0 {
		c.RoundInterval = def.RoundInterval
	}
	if c.CountdownSeconds <= 0 {
		c.CountdownSeconds = def.CountdownSeconds
	}
	if c.LevelUpThreshold <= 0 {
		c.LevelUpThreshold = def.LevelUpThreshold
	}
	if c.LevelDownThreshold <= 0 {
		c.LevelDownThreshold = def.LevelDownThreshold
	}
	if c.HysteresisWindow <= 0 {
		c.HysteresisWindow = def.HysteresisWindow
	}
	if c.MinLevel <= 0 {
		c.MinLevel = def.MinLevel
	}
	if c.MaxLevel <= 0 {
		c.MaxLevel = def.MaxLevel
	}
	return c
}

// gridPositions is the number of cells in the stimulus grid.
func (c Config) gridPositions() int {
	return c.GridSize * c.GridSize
}
