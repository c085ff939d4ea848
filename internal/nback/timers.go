package nback

import (
	"sync"
	"time"
)

// Timers schedules the session's cadence: a repeating round-advance task
// and one-shot delays. Cancel functions must be safe to call more than
// once and after firing, so session teardown can always cancel
// unconditionally.
type Timers interface {
	// Repeat invokes fn every interval until the returned cancel
	// function is called.
	Repeat(interval time.Duration, fn func()) (cancel func())
	// After invokes fn once after the delay unless cancelled first.
	After(delay time.Duration, fn func()) (cancel func())
}

// TickerTimers is the production implementation backed by time.Ticker
// and time.AfterFunc.
type TickerTimers struct{}

func (TickerTimers) Repeat(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (TickerTimers) After(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// ManualTimers queues scheduled tasks without running them, letting a
// test (or a host event loop) drive ticks explicitly.
type ManualTimers struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	fn        func()
	repeating bool
	cancelled bool
}

func NewManualTimers() *ManualTimers {
	return &ManualTimers{}
}

func (m *ManualTimers) Repeat(_ time.Duration, fn func()) func() {
	return m.add(fn, true)
}

func (m *ManualTimers) After(_ time.Duration, fn func()) func() {
	return m.add(fn, false)
}

func (m *ManualTimers) add(fn func(), repeating bool) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{fn: fn, repeating: repeating}
	m.tasks = append(m.tasks, task)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		task.cancelled = true
	}
}

// Fire runs every live task once. One-shot tasks are consumed.
func (m *ManualTimers) Fire() {
	m.mu.Lock()
	var toRun []func()
	live := m.tasks[:0]
	for _, task := range m.tasks {
		if task.cancelled {
			continue
		}
		toRun = append(toRun, task.fn)
		if task.repeating {
			live = append(live, task)
		}
	}
	m.tasks = live
	m.mu.Unlock()

	for _, fn := range toRun {
		fn()
	}
}

// Pending reports how many live tasks are scheduled.
func (m *ManualTimers) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, task := range m.tasks {
		if !task.cancelled {
			n++
		}
	}
	return n
}
