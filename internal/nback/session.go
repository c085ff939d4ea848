package nback

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/billyribeiro-ux/cognition-os/internal/storage"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// Phase is the session state machine position.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseCountdown Phase = "countdown"
	PhasePlaying   Phase = "playing"
	PhaseResults   Phase = "results"
)

// FeedbackKind is the transient per-round feedback observer value.
type FeedbackKind string

const (
	FeedbackNone      FeedbackKind = ""
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
)

// persistedState is the blob stored under StorageKey.
type persistedState struct {
	DifficultyLevel       int   `json:"difficultyLevel"`
	RecentAccuracyHistory []int `json:"recentAccuracyHistory"`
}

// Result summarizes a finished session.
type Result struct {
	SessionDate      string `json:"sessionDate"`
	Level            int    `json:"nLevel"`
	Accuracy         int    `json:"accuracy"`
	Rounds           int    `json:"rounds"`
	DurationSeconds  int    `json:"durationSeconds"`
	PositionAccuracy int    `json:"positionAccuracy"`
	SymbolAccuracy   int    `json:"symbolAccuracy"`
}

// Session runs one adaptive drill at a time. It owns its state
// exclusively; the mutex only guards against its own timer callbacks
// racing host calls. Concurrent sessions are not supported: Start
// cancels any timers left from a previous run.
type Session struct {
	mu sync.Mutex

	cfg       Config
	engine    *Engine
	rng       *rand.Rand
	timers    Timers
	clock     timeutil.Clock
	kv        storage.KV
	presenter Presenter
	feedback  FeedbackSink

	phase        Phase
	level        int
	history      []int
	rounds       []Round
	currentIndex int
	totalRounds  int

	positionCorrect   int
	positionIncorrect int
	symbolCorrect     int
	symbolIncorrect   int

	pressedPosition bool
	pressedSymbol   bool
	feedbackKind    FeedbackKind

	countdownValue int
	sessionStart   time.Time

	cancelRound     func()
	cancelCountdown func()
}

// Option configures a Session.
type Option func(*Session)

// WithTimers replaces the production ticker timers.
func WithTimers(t Timers) Option { return func(s *Session) { s.timers = t } }

// WithClock replaces the wall-clock source.
func WithClock(c timeutil.Clock) Option { return func(s *Session) { s.clock = c } }

// WithStorage sets the KV used for the adaptive state blob.
func WithStorage(kv storage.KV) Option { return func(s *Session) { s.kv = kv } }

// WithRand seeds the stimulus generator deterministically.
func WithRand(rng *rand.Rand) Option { return func(s *Session) { s.engine = nil; s.rng = rng } }

// WithPresenter sets the stimulus-presentation port.
func WithPresenter(p Presenter) Option { return func(s *Session) { s.presenter = p } }

// WithFeedback sets the audio/haptic feedback port.
func WithFeedback(f FeedbackSink) Option { return func(s *Session) { s.feedback = f } }

// NewSession builds an idle session, restoring the persisted difficulty
// level and accuracy history. A corrupt or missing blob falls back to
// the minimum level with an empty history.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:          cfg.normalized(),
		timers:       TickerTimers{},
		clock:        timeutil.SystemClock{},
		kv:           storage.NewMemory(),
		presenter:    nopPresenter{},
		feedback:     nopFeedback{},
		phase:        PhaseIdle,
		currentIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = NewEngine(s.cfg, s.rng)
	}

	state := persistedState{DifficultyLevel: s.cfg.MinLevel}
	storage.LoadJSON(s.kv, StorageKey, &state)
	s.level = clamp(state.DifficultyLevel, s.cfg.MinLevel, s.cfg.MaxLevel)
	if len(state.RecentAccuracyHistory) > 0 {
		s.history = append(s.history, state.RecentAccuracyHistory...)
	}
	return s
}

// Start begins a new session with the given round count (<= 0 uses the
// configured default). Any timers from a previous session are cancelled
// first.
func (s *Session) Start(roundCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimersLocked()

	if roundCount <= 0 {
		roundCount = s.cfg.Rounds
	}
	s.totalRounds = roundCount
	s.rounds = s.engine.GenerateRounds(s.level, roundCount)
	s.currentIndex = -1
	s.positionCorrect = 0
	s.positionIncorrect = 0
	s.symbolCorrect = 0
	s.symbolIncorrect = 0
	s.pressedPosition = false
	s.pressedSymbol = false
	s.feedbackKind = FeedbackNone
	s.sessionStart = s.clock.Now()

	s.phase = PhaseCountdown
	s.countdownValue = s.cfg.CountdownSeconds
	s.cancelCountdown = s.timers.Repeat(time.Second, s.countdownTick)
}

func (s *Session) countdownTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCountdown {
		return
	}
	s.countdownValue--
	if s.countdownValue > 0 {
		return
	}
	if s.cancelCountdown != nil {
		s.cancelCountdown()
		s.cancelCountdown = nil
	}
	s.beginPlayingLocked()
}

func (s *Session) beginPlayingLocked() {
	s.phase = PhasePlaying
	s.advanceLocked()
	s.cancelRound = s.timers.Repeat(s.cfg.RoundInterval, s.roundTick)
}

func (s *Session) roundTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlaying {
		return
	}
	s.evaluateCurrentLocked()
	s.advanceLocked()
}

func (s *Session) advanceLocked() {
	s.currentIndex++
	s.pressedPosition = false
	s.pressedSymbol = false
	s.feedbackKind = FeedbackNone

	if s.currentIndex >= s.totalRounds {
		s.endLocked()
		return
	}
	s.presenter.Present(s.rounds[s.currentIndex])
}

// evaluateCurrentLocked scores the round at the current index. The first
// backDistance rounds have no history to match against and are never
// scored.
func (s *Session) evaluateCurrentLocked() {
	idx := s.currentIndex
	if idx < s.level || idx >= s.totalRounds {
		return
	}

	round := s.rounds[idx]
	positionCorrect, symbolCorrect := Evaluate(round, s.pressedPosition, s.pressedSymbol)

	if positionCorrect {
		s.positionCorrect++
	} else {
		s.positionIncorrect++
	}
	if symbolCorrect {
		s.symbolCorrect++
	} else {
		s.symbolIncorrect++
	}

	both := positionCorrect && symbolCorrect
	if both {
		s.feedbackKind = FeedbackCorrect
	} else {
		s.feedbackKind = FeedbackIncorrect
	}
	s.feedback.RoundFeedback(both)
}

func (s *Session) endLocked() {
	if s.cancelRound != nil {
		s.cancelRound()
		s.cancelRound = nil
	}

	// Finalize the outstanding round before scoring the session.
	s.evaluateCurrentLocked()
	s.phase = PhaseResults

	acc := s.accuracyLocked()
	s.history = append(s.history, acc.Overall)
	if len(s.history) > s.cfg.HysteresisWindow {
		s.history = s.history[len(s.history)-s.cfg.HysteresisWindow:]
	}
	s.applyHysteresisLocked()
	s.persistLocked()
}

// applyHysteresisLocked commits a difficulty change only after a full
// window of consistent sessions, then clears the window. At the level
// bounds nothing changes even when the thresholds are met.
func (s *Session) applyHysteresisLocked() {
	if len(s.history) < s.cfg.HysteresisWindow {
		return
	}

	allAbove := true
	allBelow := true
	for _, acc := range s.history {
		if acc < s.cfg.LevelUpThreshold {
			allAbove = false
		}
		if acc >= s.cfg.LevelDownThreshold {
			allBelow = false
		}
	}

	switch {
	case allAbove && s.level < s.cfg.MaxLevel:
		s.level++
		s.history = nil
	case allBelow && s.level > s.cfg.MinLevel:
		s.level--
		s.history = nil
	}
}

// persistLocked writes the adaptive state blob. Best effort: a failing
// store never reaches the caller.
func (s *Session) persistLocked() {
	state := persistedState{
		DifficultyLevel:       s.level,
		RecentAccuracyHistory: append([]int(nil), s.history...),
	}
	if state.RecentAccuracyHistory == nil {
		state.RecentAccuracyHistory = []int{}
	}
	_ = storage.SaveJSON(s.kv, StorageKey, state)
}

// PressPosition records a position-match press for the current round.
// Ignored outside the playing phase; repeated presses are idempotent.
func (s *Session) PressPosition() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}
	s.pressedPosition = true
}

// PressSymbol records a symbol-match press for the current round.
func (s *Session) PressSymbol() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return
	}
	s.pressedSymbol = true
}

// Reset cancels any running timers and returns to idle, discarding the
// in-flight session with no partial credit. Safe to call at any time.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimersLocked()
	s.phase = PhaseIdle
	s.currentIndex = -1
	s.rounds = nil
	s.pressedPosition = false
	s.pressedSymbol = false
	s.feedbackKind = FeedbackNone
}

// Dispose releases the session's timers. Idempotent.
func (s *Session) Dispose() {
	s.Reset()
}

func (s *Session) cancelTimersLocked() {
	if s.cancelRound != nil {
		s.cancelRound()
		s.cancelRound = nil
	}
	if s.cancelCountdown != nil {
		s.cancelCountdown()
		s.cancelCountdown = nil
	}
}

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Level returns the current difficulty (back distance).
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// History returns a copy of the trailing session accuracies.
func (s *Session) History() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.history...)
}

// CountdownValue returns the remaining countdown seconds.
func (s *Session) CountdownValue() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdownValue
}

// CurrentRound returns the round being presented, if any.
func (s *Session) CurrentRound() (Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentIndex < 0 || s.currentIndex >= len(s.rounds) {
		return Round{}, false
	}
	return s.rounds[s.currentIndex], true
}

// Progress returns the percentage of rounds presented so far.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.totalRounds == 0 {
		return 0
	}
	return int(math.Round(float64(s.currentIndex+1) / float64(s.totalRounds) * 100))
}

// Accuracy returns the session accuracy so far.
func (s *Session) Accuracy() Accuracy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accuracyLocked()
}

func (s *Session) accuracyLocked() Accuracy {
	return CalculateAccuracy(s.positionCorrect, s.positionIncorrect, s.symbolCorrect, s.symbolIncorrect)
}

// Result summarizes the session for recording.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accuracyLocked()
	return Result{
		SessionDate:      s.clock.Today(),
		Level:            s.level,
		Accuracy:         acc.Overall,
		Rounds:           s.totalRounds,
		DurationSeconds:  int(math.Round(s.clock.Now().Sub(s.sessionStart).Seconds())),
		PositionAccuracy: acc.Position,
		SymbolAccuracy:   acc.Symbol,
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
