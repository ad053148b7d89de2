package remote

import (
	"math"

	"domeremote-go/types"
)

// LevelReader reads the electrical level of a button input.
// Inputs are active-low: a pressed button reads false.
type LevelReader interface {
	ReadLevel(id types.ButtonID) bool
}

// Button is the debounced logical state of one input, sampled once per tick.
type Button struct {
	id        types.ButtonID
	level     bool  // debounced, true == pressed
	prev      bool  // level at the previous tick
	pressedAt int64 // ms, set on the rising edge
	changedAt int64 // ms of the last accepted level change
	debounce  int64 // ms
}

func newButton(id types.ButtonID, debounceMs int64) Button {
	return Button{id: id, debounce: debounceMs, changedAt: math.MinInt64 / 2}
}

// Sample reads the input and updates the debounced level. A change is only
// accepted once debounce ms have passed since the previous accepted change.
func (b *Button) Sample(in LevelReader, now int64) {
	b.prev = b.level
	pressed := !in.ReadLevel(b.id)
	if pressed == b.level || now-b.changedAt < b.debounce {
		return
	}
	b.level = pressed
	b.changedAt = now
}

func (b *Button) ID() types.ButtonID { return b.id }
func (b *Button) Pressed() bool      { return b.level }
func (b *Button) Rose() bool         { return b.level && !b.prev }
func (b *Button) Fell() bool         { return !b.level && b.prev }
