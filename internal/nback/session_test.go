package nback

import (
	"math/rand"
	"testing"
	"time"

	"github.com/billyribeiro-ux/cognition-os/internal/storage"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// testConfig keeps sessions short and, with the near-zero match
// probability, makes every generated round a guaranteed non-match so a
// silent user scores 100% and a trigger-happy one scores 0%.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Rounds = 6
	cfg.MatchProbability = 1e-12
	return cfg
}

func newTestSession(t *testing.T, kv storage.KV) (*Session, *ManualTimers) {
	t.Helper()
	timers := NewManualTimers()
	clock := timeutil.FixedClock{Time: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	s := NewSession(testConfig(),
		WithTimers(timers),
		WithClock(clock),
		WithStorage(kv),
		WithRand(rand.New(rand.NewSource(7))),
	)
	return s, timers
}

// runSession drives a full session. pressEvery makes the user press both
// buttons every round, guaranteeing 0% accuracy under testConfig.
func runSession(t *testing.T, s *Session, timers *ManualTimers, pressEvery bool) {
	t.Helper()
	s.Start(0)
	if s.Phase() != PhaseCountdown {
		t.Fatalf("phase after Start = %q, want countdown", s.Phase())
	}
	for i := 0; i < 3; i++ {
		timers.Fire()
	}
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase after countdown = %q, want playing", s.Phase())
	}
	for s.Phase() == PhasePlaying {
		if pressEvery {
			s.PressPosition()
			s.PressSymbol()
		}
		timers.Fire()
	}
	if s.Phase() != PhaseResults {
		t.Fatalf("phase after final round = %q, want results", s.Phase())
	}
}

func TestSessionPerfectRun(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	runSession(t, s, timers, false)

	acc := s.Accuracy()
	if acc.Position != 100 || acc.Symbol != 100 || acc.Overall != 100 {
		t.Fatalf("accuracy = %+v, want all 100", acc)
	}
	if got := s.History(); len(got) != 1 || got[0] != 100 {
		t.Fatalf("history = %v, want [100]", got)
	}
}

func TestSessionHysteresisLevelUp(t *testing.T) {
	kv := storage.NewMemory()
	s, timers := newTestSession(t, kv)
	if s.Level() != 2 {
		t.Fatalf("initial level = %d, want 2", s.Level())
	}

	// Two perfect sessions are not enough to change the level.
	runSession(t, s, timers, false)
	runSession(t, s, timers, false)
	if s.Level() != 2 {
		t.Fatalf("level after 2 sessions = %d, want 2", s.Level())
	}

	// The third fills the window and commits the increase.
	runSession(t, s, timers, false)
	if s.Level() != 3 {
		t.Fatalf("level after 3 perfect sessions = %d, want 3", s.Level())
	}
	if got := s.History(); len(got) != 0 {
		t.Fatalf("history after level change = %v, want empty", got)
	}

	var state persistedState
	if !storage.LoadJSON(kv, StorageKey, &state) {
		t.Fatal("adaptive state was not persisted")
	}
	if state.DifficultyLevel != 3 || len(state.RecentAccuracyHistory) != 0 {
		t.Fatalf("persisted state = %+v, want level 3 with empty history", state)
	}
}

func TestSessionHysteresisLevelDown(t *testing.T) {
	kv := storage.NewMemory()
	storage.SaveJSON(kv, StorageKey, persistedState{DifficultyLevel: 4})
	s, timers := newTestSession(t, kv)
	if s.Level() != 4 {
		t.Fatalf("restored level = %d, want 4", s.Level())
	}

	for i := 0; i < 3; i++ {
		runSession(t, s, timers, true)
	}
	if s.Level() != 3 {
		t.Fatalf("level after 3 failed sessions = %d, want 3", s.Level())
	}
}

func TestSessionHysteresisMixedResultsHoldLevel(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	runSession(t, s, timers, false) // 100
	runSession(t, s, timers, true)  // 0
	runSession(t, s, timers, false) // 100
	if s.Level() != 2 {
		t.Fatalf("level after mixed sessions = %d, want unchanged 2", s.Level())
	}
	if got := s.History(); len(got) != 3 {
		t.Fatalf("history length = %d, want full window 3", len(got))
	}
}

func TestSessionLevelClampedAtMinimum(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	for i := 0; i < 6; i++ {
		runSession(t, s, timers, true)
	}
	if s.Level() != 2 {
		t.Fatalf("level = %d, want clamped at minimum 2", s.Level())
	}
}

func TestSessionRestoresPersistedState(t *testing.T) {
	kv := storage.NewMemory()
	storage.SaveJSON(kv, StorageKey, persistedState{
		DifficultyLevel:       5,
		RecentAccuracyHistory: []int{85, 92},
	})
	s, _ := newTestSession(t, kv)
	if s.Level() != 5 {
		t.Fatalf("level = %d, want restored 5", s.Level())
	}
	if got := s.History(); len(got) != 2 || got[0] != 85 || got[1] != 92 {
		t.Fatalf("history = %v, want [85 92]", got)
	}
}

func TestSessionCorruptBlobFallsBack(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(StorageKey, "][ not json")
	s, _ := newTestSession(t, kv)
	if s.Level() != 2 {
		t.Fatalf("level = %d, want fallback minimum 2", s.Level())
	}
	if len(s.History()) != 0 {
		t.Fatal("expected empty history after corrupt blob")
	}
}

func TestSessionPressOutsidePlayingIgnored(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())

	// Idle: no-op.
	s.PressPosition()
	s.PressSymbol()

	s.Start(0)
	// Countdown: still a no-op.
	s.PressPosition()
	timers.Fire()
	timers.Fire()
	timers.Fire()
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %q, want playing", s.Phase())
	}
	if s.pressedPosition {
		t.Fatal("countdown press leaked into the first round")
	}
	s.Reset()
}

func TestSessionResetCancelsTimers(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	s.Start(0)
	if timers.Pending() == 0 {
		t.Fatal("expected a countdown timer after Start")
	}

	s.Reset()
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase after Reset = %q, want idle", s.Phase())
	}
	if timers.Pending() != 0 {
		t.Fatalf("pending timers after Reset = %d, want 0", timers.Pending())
	}

	// Dispose must be idempotent with no timers active.
	s.Dispose()
	s.Dispose()
}

func TestSessionStartCancelsPreviousRun(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	s.Start(0)
	timers.Fire()
	timers.Fire()
	timers.Fire() // playing, round timer live

	s.Start(0)
	if got := timers.Pending(); got != 1 {
		t.Fatalf("pending timers after restart = %d, want only the new countdown", got)
	}
	if s.Phase() != PhaseCountdown {
		t.Fatalf("phase after restart = %q, want countdown", s.Phase())
	}
}

func TestSessionScoredAttemptCount(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	runSession(t, s, timers, false)

	// With N=2 and 6 rounds only rounds 2..5 are scorable.
	if got := s.positionCorrect + s.positionIncorrect; got != 4 {
		t.Fatalf("position attempts = %d, want 4", got)
	}
	if got := s.symbolCorrect + s.symbolIncorrect; got != 4 {
		t.Fatalf("symbol attempts = %d, want 4", got)
	}
}

func TestSessionResult(t *testing.T) {
	s, timers := newTestSession(t, storage.NewMemory())
	runSession(t, s, timers, false)

	res := s.Result()
	if res.SessionDate != "2026-03-14" {
		t.Fatalf("session date = %q, want 2026-03-14", res.SessionDate)
	}
	if res.Rounds != 6 || res.Accuracy != 100 {
		t.Fatalf("result = %+v, want 6 rounds at 100%%", res)
	}
}

type recordingPresenter struct {
	rounds []Round
}

func (p *recordingPresenter) Present(r Round) { p.rounds = append(p.rounds, r) }

func TestSessionPresentsEveryRound(t *testing.T) {
	timers := NewManualTimers()
	presenter := &recordingPresenter{}
	s := NewSession(testConfig(),
		WithTimers(timers),
		WithStorage(storage.NewMemory()),
		WithRand(rand.New(rand.NewSource(11))),
		WithPresenter(presenter),
	)
	runSession(t, s, timers, false)

	if len(presenter.rounds) != 6 {
		t.Fatalf("presented %d rounds, want 6", len(presenter.rounds))
	}
}
