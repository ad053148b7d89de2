// Package hal binds the remote's buttons, indicator and radio UART to the
// board. Platform files provide the pin factory and UART dialler.
package hal

import (
	"domeremote-go/errcode"
	"domeremote-go/types"
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// ParsePull maps "up", "down" and "none"; empty means up.
func ParsePull(s string) (Pull, error) {
	switch s {
	case "", "up":
		return PullUp, nil
	case "down":
		return PullDown, nil
	case "none":
		return PullNone, nil
	default:
		return PullNone, errcode.InvalidParams
	}
}

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// Indicator shows the active mode and power state.
type Indicator interface {
	SetIndicator(mode types.Mode, powered bool)
}
