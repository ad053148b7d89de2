package hal

import (
	"domeremote-go/errcode"
	"domeremote-go/types"
)

// Buttons reads raw button levels. Buttons are wired active-low.
type Buttons struct {
	pins [types.NumButtons]GPIOPin
}

func NewButtons(f PinFactory, cfg types.ButtonPins) (*Buttons, error) {
	pull, err := ParsePull(cfg.Pull)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "hal.buttons", err)
	}
	b := &Buttons{}
	nums := [types.NumButtons]int{
		types.ButtonMode: cfg.Mode,
		types.ButtonUp:   cfg.Up,
		types.ButtonDown: cfg.Down,
	}
	for id, n := range nums {
		p, ok := f.ByNumber(n)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "hal.buttons", Msg: types.ButtonID(id).String()}
		}
		if err := p.ConfigureInput(pull); err != nil {
			return nil, errcode.Wrap(errcode.Error, "hal.buttons", err)
		}
		b.pins[id] = p
	}
	return b, nil
}

// ReadLevel returns the raw pin level. An unknown button reads high
// (released).
func (b *Buttons) ReadLevel(id types.ButtonID) bool {
	if id >= types.NumButtons {
		return true
	}
	return b.pins[id].Get()
}
