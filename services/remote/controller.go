package remote

import (
	"log/slog"
	"time"

	"domeremote-go/protocol"
	"domeremote-go/services/internal/util"
	"domeremote-go/types"
	"domeremote-go/x/timex"
)

// Indicator shows the active mode and power state. It never feeds back.
type Indicator interface {
	SetIndicator(mode types.Mode, powered bool)
}

// Timing is the controller's set of thresholds and pacing delays.
type Timing struct {
	Tick       time.Duration
	Debounce   time.Duration
	PowerOn    time.Duration
	PowerOff   time.Duration
	ShortPress time.Duration
	Idle       time.Duration
	InterSend  time.Duration
	InterParam time.Duration
	Settle     time.Duration
	StartupGap time.Duration
}

// TimingFrom fills a Timing from config, using defaults for unset fields.
func TimingFrom(c types.RemoteConfig) Timing {
	d := types.DefaultRemoteConfig()
	ms := func(v, def int) time.Duration { return util.Ms(v, time.Duration(def)*time.Millisecond) }
	return Timing{
		Tick:       ms(c.TickMs, d.TickMs),
		Debounce:   ms(c.DebounceMs, d.DebounceMs),
		PowerOn:    ms(c.PowerOnHoldMs, d.PowerOnHoldMs),
		PowerOff:   ms(c.PowerOffMs, d.PowerOffMs),
		ShortPress: ms(c.ShortPressMs, d.ShortPressMs),
		Idle:       ms(c.IdleMs, d.IdleMs),
		InterSend:  ms(c.InterSendMs, d.InterSendMs),
		InterParam: ms(c.InterParamMs, d.InterParamMs),
		Settle:     ms(c.SettleMs, d.SettleMs),
		StartupGap: ms(c.StartupGapMs, d.StartupGapMs),
	}
}

// DefaultTiming is TimingFrom with an empty config.
func DefaultTiming() Timing { return TimingFrom(types.RemoteConfig{}) }

// Controller owns the remote's state and advances it one tick at a time.
// It is not safe for concurrent use.
type Controller struct {
	in    LevelReader
	ind   Indicator
	clock timex.Clock
	log   *slog.Logger

	timing     Timing
	classifier Classifier
	idle       IdleMonitor
	disp       *Dispatcher

	buttons [types.NumButtons]Button
	state   State

	lastMode    types.Mode
	lastPowered bool
	shown       bool
}

func NewController(in LevelReader, radio Broadcaster, ind Indicator, clock timex.Clock, log *slog.Logger, t Timing) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		in:    in,
		ind:   ind,
		clock: clock,
		log:   log,
		state: bootState(),
	}
	c.disp = NewDispatcher(radio, clock, log, t.InterSend)
	c.Configure(t)
	for id := types.ButtonID(0); id < types.NumButtons; id++ {
		c.buttons[id] = newButton(id, t.Debounce.Milliseconds())
	}
	return c
}

// Configure replaces the timing. Button edge state is kept.
func (c *Controller) Configure(t Timing) {
	c.timing = t
	c.classifier = Classifier{
		PowerOnMs:  t.PowerOn.Milliseconds(),
		PowerOffMs: t.PowerOff.Milliseconds(),
		ShortMs:    t.ShortPress.Milliseconds(),
	}
	c.idle = IdleMonitor{TimeoutMs: t.Idle.Milliseconds()}
	c.disp.interSend = t.InterSend
	for i := range c.buttons {
		c.buttons[i].debounce = t.Debounce.Milliseconds()
	}
}

func (c *Controller) Timing() Timing              { return c.timing }
func (c *Controller) State() State                { return c.state }
func (c *Controller) Dispatcher() *Dispatcher     { return c.disp }
func (c *Controller) Snapshot() types.RemoteState { return c.state.Snapshot(c.clock.NowMs()) }

// Tick runs one polling cycle: sample buttons, classify the primary button,
// apply intents, then run the idle monitor.
func (c *Controller) Tick() {
	now := c.clock.NowMs()
	for i := range c.buttons {
		c.buttons[i].Sample(c.in, now)
	}

	if in := c.classifier.Classify(&c.buttons[types.ButtonMode], now, c.state.Powered); in != IntentNone {
		c.Apply(in)
	}
	if c.state.Powered && c.buttons[types.ButtonUp].Pressed() {
		c.Apply(IntentIncrement)
	}
	if c.state.Powered && c.buttons[types.ButtonDown].Pressed() {
		c.Apply(IntentDecrement)
	}

	if c.idle.Check(&c.state, c.clock.NowMs()) {
		c.log.Info("idle timeout, powering off", "idle_ms", c.timing.Idle.Milliseconds())
	}
	c.showIndicator()
}

// Apply mutates the state for one intent and performs its transmissions.
func (c *Controller) Apply(in Intent) {
	switch in {
	case IntentPowerOn:
		c.state.Powered = true
		c.state.Activity = c.clock.NowMs()
		c.log.Info("power on")
		c.showIndicator()
		c.disp.Sequence(protocol.StartupSequence(), c.timing.StartupGap)
	case IntentPowerOff:
		c.state.Powered = false
		c.log.Info("power off")
	case IntentCycleMode:
		c.state.CycleMode()
		c.log.Info("mode", "mode", c.state.Mode.String())
	case IntentIncrement, IntentDecrement:
		if !c.state.Powered {
			return
		}
		delta := 1
		if in == IntentDecrement {
			delta = -1
		}
		v := c.state.Step(delta)
		c.log.Debug("slider", "mode", c.state.Mode.String(), "index", v)
		c.Resync()
		c.clock.Sleep(c.timing.Settle)
	}
}

// Resync sends every slider's current command, intensity first.
func (c *Controller) Resync() {
	for m := types.Mode(0); m < types.NumModes; m++ {
		if m > 0 {
			c.clock.Sleep(c.timing.InterParam)
		}
		c.disp.Dispatch(&c.state, c.state.Command(m))
	}
}

func (c *Controller) showIndicator() {
	if c.ind == nil {
		return
	}
	if c.shown && c.lastMode == c.state.Mode && c.lastPowered == c.state.Powered {
		return
	}
	c.ind.SetIndicator(c.state.Mode, c.state.Powered)
	c.lastMode, c.lastPowered, c.shown = c.state.Mode, c.state.Powered, true
}
