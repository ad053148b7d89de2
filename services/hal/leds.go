package hal

import (
	"domeremote-go/errcode"
	"domeremote-go/types"
)

// LEDIndicator lights one LED for the active mode while powered and none
// while off.
type LEDIndicator struct {
	pins [types.NumModes]GPIOPin
}

func NewLEDIndicator(f PinFactory, cfg types.LEDPins) (*LEDIndicator, error) {
	l := &LEDIndicator{}
	nums := [types.NumModes]int{
		types.ModeIntensity: cfg.Intensity,
		types.ModeColor:     cfg.Color,
		types.ModeDepth:     cfg.Depth,
	}
	for m, n := range nums {
		p, ok := f.ByNumber(n)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "hal.leds", Msg: types.Mode(m).String()}
		}
		if err := p.ConfigureOutput(false); err != nil {
			return nil, errcode.Wrap(errcode.Error, "hal.leds", err)
		}
		l.pins[m] = p
	}
	return l, nil
}

func (l *LEDIndicator) SetIndicator(mode types.Mode, powered bool) {
	for m, p := range l.pins {
		p.Set(powered && types.Mode(m) == mode)
	}
}
