package typewriter

import (
	"sync"
	"time"
)

// Scheduler arms periodic callbacks.
//
// Callbacks of one Ticker run in order and never overlap; the next call is
// scheduled only after the previous one returned.
type Scheduler interface {
	Every(period time.Duration, fn func()) Ticker
}

// Ticker is a periodic callback that can be cancelled.
type Ticker interface {
	// Stop cancels future calls. Stopping twice is a no-op.
	Stop()
}

// TimerScheduler schedules callbacks on the runtime timer heap.
type TimerScheduler struct{}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() TimerScheduler { return TimerScheduler{} }

// Every arms fn every period. A zero period fires as fast as the runtime
// timers allow.
func (TimerScheduler) Every(period time.Duration, fn func()) Ticker {
	if period < 0 {
		period = 0
	}
	t := &timerTicker{period: period, fn: fn}
	t.mu.Lock()
	t.deadline = time.Now().Add(period)
	t.timer = time.AfterFunc(period, t.fire)
	t.mu.Unlock()
	return t
}

type timerTicker struct {
	mu       sync.Mutex
	timer    *time.Timer
	period   time.Duration
	deadline time.Time
	stopped  bool
	fn       func()
}

func (t *timerTicker) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.fn()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	// Drift correction: aim at the next deadline, not period after now.
	t.deadline = t.deadline.Add(t.period)
	wait := time.Until(t.deadline)
	if wait < 0 {
		wait = 0
		t.deadline = time.Now()
	}
	t.timer.Reset(wait)
}

func (t *timerTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.timer.Stop()
}

// ManualScheduler runs tickers against virtual time advanced by the caller.
// Callbacks run synchronously inside Advance.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	tickers []*manualTicker
}

type manualTicker struct {
	s       *ManualScheduler
	period  time.Duration
	next    time.Duration
	seq     uint64
	stopped bool
	fn      func()
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every arms fn every period of virtual time.
func (m *ManualScheduler) Every(period time.Duration, fn func()) Ticker {
	if period < 0 {
		period = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTicker{s: m, period: period, next: m.now + period, seq: m.seq, fn: fn}
	m.tickers = append(m.tickers, t)
	return t
}

func (t *manualTicker) Stop() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.stopped = true
}

// Elapsed returns the virtual time.
func (m *ManualScheduler) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Armed returns the number of live tickers.
func (m *ManualScheduler) Armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compact()
	return len(m.tickers)
}

// Advance moves virtual time forward by d, firing every due callback in
// deadline order. Callbacks may arm or stop tickers.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		m.mu.Lock()
		m.compact()
		var due *manualTicker
		for _, t := range m.tickers {
			if t.next > target {
				continue
			}
			if due == nil || t.next < due.next || (t.next == due.next && t.seq < due.seq) {
				due = t
			}
		}
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = due.next
		due.next += due.period
		fn := due.fn
		m.mu.Unlock()
		fn()
	}
}

// Settle advances until no ticker is armed or limit virtual time has passed.
func (m *ManualScheduler) Settle(limit time.Duration) {
	m.mu.Lock()
	deadline := m.now + limit
	m.mu.Unlock()
	for {
		m.mu.Lock()
		m.compact()
		if len(m.tickers) == 0 || m.now >= deadline {
			m.mu.Unlock()
			return
		}
		step := deadline - m.now
		for _, t := range m.tickers {
			if t.next-m.now < step {
				step = t.next - m.now
			}
		}
		m.mu.Unlock()
		m.Advance(step)
	}
}

func (m *ManualScheduler) compact() {
	live := m.tickers[:0]
	for _, t := range m.tickers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tickers); i++ {
		m.tickers[i] = nil
	}
	m.tickers = live
}
