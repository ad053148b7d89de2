package remote

// Intent is a classified user action.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentPowerOn
	IntentPowerOff
	IntentCycleMode
	IntentIncrement
	IntentDecrement
)

func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentPowerOn:
		return "power_on"
	case IntentPowerOff:
		return "power_off"
	case IntentCycleMode:
		return "cycle_mode"
	case IntentIncrement:
		return "increment"
	case IntentDecrement:
		return "decrement"
	default:
		return "?"
	}
}
