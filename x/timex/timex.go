package timex

import (
	"sync"
	"time"
)

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Clock is the time source for code that measures durations and paces work.
// NowMs is monotonic milliseconds from an arbitrary origin.
type Clock interface {
	NowMs() int64
	Sleep(d time.Duration)
}

// System is a Clock backed by the runtime monotonic clock.
type System struct{ start time.Time }

func NewSystem() *System { return &System{start: time.Now()} }

func (s *System) NowMs() int64          { return time.Since(s.start).Milliseconds() }
func (s *System) Sleep(d time.Duration) { time.Sleep(d) }

// Manual is a Clock that only moves when told to. Sleep advances it, so
// paced code runs instantly while still observing the elapsed time.
type Manual struct {
	mu    sync.Mutex
	ms    int64
	slept time.Duration
}

func NewManual(startMs int64) *Manual { return &Manual{ms: startMs} }

func (m *Manual) NowMs() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ms
}

func (m *Manual) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.ms += d.Milliseconds()
	m.slept += d
	m.mu.Unlock()
}

// Advance moves the clock forward without counting as a sleep.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.ms += d.Milliseconds()
	m.mu.Unlock()
}

// Slept reports the total duration passed to Sleep.
func (m *Manual) Slept() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept
}
