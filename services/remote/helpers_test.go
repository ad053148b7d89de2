package remote

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"domeremote-go/types"
	"domeremote-go/x/timex"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// fakeInput models active-low buttons: a pressed button reads false.
type fakeInput struct {
	mu      sync.Mutex
	pressed [types.NumButtons]bool
}

func (f *fakeInput) ReadLevel(id types.ButtonID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.pressed[id]
}

func (f *fakeInput) set(id types.ButtonID, pressed bool) {
	f.mu.Lock()
	f.pressed[id] = pressed
	f.mu.Unlock()
}

type fakeRadio struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

var errRadio = errors.New("radio busy")

func (r *fakeRadio) Broadcast(b []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRadio
	}
	r.sent = append(r.sent, string(b))
	return nil
}

func (r *fakeRadio) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sent
	r.sent = nil
	return out
}

type indicatorCall struct {
	mode    types.Mode
	powered bool
}

type fakeIndicator struct{ calls []indicatorCall }

func (f *fakeIndicator) SetIndicator(m types.Mode, powered bool) {
	f.calls = append(f.calls, indicatorCall{m, powered})
}

func (f *fakeIndicator) last() indicatorCall { return f.calls[len(f.calls)-1] }

type harness struct {
	in    *fakeInput
	radio *fakeRadio
	ind   *fakeIndicator
	clk   *timex.Manual
	c     *Controller
}

func newHarness() *harness {
	h := &harness{
		in:    &fakeInput{},
		radio: &fakeRadio{},
		ind:   &fakeIndicator{},
		clk:   timex.NewManual(10_000),
	}
	h.c = NewController(h.in, h.radio, h.ind, h.clk, quietLogger(), DefaultTiming())
	return h
}

// hold waits one tick period, then presses id for d, ticking on press and
// on release. The leading wait keeps back-to-back holds outside the
// debounce window.
func (h *harness) hold(id types.ButtonID, d time.Duration) {
	h.clk.Advance(h.c.Timing().Tick)
	h.in.set(id, true)
	h.c.Tick()
	h.clk.Advance(d)
	h.in.set(id, false)
	h.c.Tick()
}

// tap presses id for one tick period.
func (h *harness) tap(id types.ButtonID) { h.hold(id, h.c.Timing().Tick) }

func (h *harness) powerOn() {
	h.hold(types.ButtonMode, 5*time.Second)
	h.radio.take()
}
