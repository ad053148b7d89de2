package remote

import (
	"domeremote-go/protocol"
	"domeremote-go/types"
	"domeremote-go/x/mathx"
)

// State is everything the controller owns. It is only touched from the tick
// loop.
type State struct {
	Powered  bool
	Mode     types.Mode
	Sliders  [types.NumModes]protocol.Index
	Activity int64 // ms of the last user-driven broadcast
}

// bootState is the state after reset: off, intensity mode, receiver defaults.
func bootState() State {
	return State{
		Mode: types.ModeIntensity,
		Sliders: [types.NumModes]protocol.Index{
			types.ModeIntensity: protocol.DefaultIntensity,
			types.ModeColor:     protocol.DefaultColor,
			types.ModeDepth:     protocol.DefaultDepth,
		},
	}
}

// tableFor returns the command table a mode's slider indexes.
func tableFor(m types.Mode) protocol.Table {
	switch m {
	case types.ModeColor:
		return protocol.Color
	case types.ModeDepth:
		return protocol.Depth
	default:
		return protocol.Intensity
	}
}

// Step moves the active slider by delta, saturating at the table bounds.
func (s *State) Step(delta int) protocol.Index {
	t := tableFor(s.Mode)
	v := mathx.StepClamp(s.Sliders[s.Mode], delta, 0, t.Max())
	s.Sliders[s.Mode] = v
	return v
}

// CycleMode advances to the next mode.
func (s *State) CycleMode() { s.Mode = s.Mode.Next() }

// Command is the canonical (Left) command for mode m's current slider value.
func (s *State) Command(m types.Mode) protocol.Command {
	return tableFor(m).At(s.Sliders[m])
}

func (s *State) Snapshot(now int64) types.RemoteState {
	return types.RemoteState{
		Powered:   s.Powered,
		Mode:      s.Mode.String(),
		Intensity: uint8(s.Sliders[types.ModeIntensity]),
		Color:     uint8(s.Sliders[types.ModeColor]),
		Depth:     uint8(s.Sliders[types.ModeDepth]),
		Activity:  s.Activity,
		TS:        now,
	}
}
