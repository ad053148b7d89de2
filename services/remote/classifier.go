package remote

// Classifier turns a completed press of the primary button into an intent
// based on how long it was held and whether the device is powered.
type Classifier struct {
	PowerOnMs  int64 // off: hold >= this powers on
	PowerOffMs int64 // on: hold >= this powers off
	ShortMs    int64 // on: hold < this cycles the mode
}

// Classify inspects the edge b saw on this tick. The press start is taken on
// the rising edge; the release emits at most one intent. Holds that match no
// bucket are dropped.
func (c Classifier) Classify(b *Button, now int64, powered bool) Intent {
	switch {
	case b.Rose():
		b.pressedAt = now
		return IntentNone
	case !b.Fell():
		return IntentNone
	}
	return c.ForDuration(now-b.pressedAt, powered)
}

// ForDuration applies the bucket table, first match wins.
func (c Classifier) ForDuration(d int64, powered bool) Intent {
	switch {
	case !powered && d >= c.PowerOnMs:
		return IntentPowerOn
	case powered && d >= c.PowerOffMs:
		return IntentPowerOff
	case powered && d < c.ShortMs:
		return IntentCycleMode
	default:
		return IntentNone
	}
}
