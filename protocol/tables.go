package protocol

import "domeremote-go/x/mathx"

// Index is a position in a Table.
type Index uint8

// Table is an immutable ordered list of canonical (Left) commands for one key.
type Table struct {
	key  Key
	cmds []Command
}

func newTable(k Key, values ...string) Table {
	cmds := make([]Command, len(values))
	for i, v := range values {
		cmds[i] = Make(k, v, Left)
	}
	return Table{key: k, cmds: cmds}
}

func (t Table) Key() Key { return t.key }

func (t Table) Len() int { return len(t.cmds) }

// Max is the highest valid index.
func (t Table) Max() Index { return Index(len(t.cmds) - 1) }

// Clamp saturates i to the table bounds.
func (t Table) Clamp(i Index) Index { return mathx.Clamp(i, 0, t.Max()) }

// At returns the canonical command at i, saturating out-of-range indexes.
func (t Table) At(i Index) Command { return t.cmds[t.Clamp(i)] }

var (
	Intensity = newTable(KeyIntensity, "00", "02", "04", "06", "08", "0:")
	Color     = newTable(KeyColor, "05", "+5", "-5")
	Depth     = newTable(KeyDepth, "_0", "_1")
)

// Receiver defaults, as indexes into the tables above.
const (
	DefaultIntensity Index = 1
	DefaultColor     Index = 0
	DefaultDepth     Index = 0
)

// startupKeys is the per-key order of the startup burst with the default
// value token for each.
var startupKeys = [...]struct {
	key   Key
	value string
}{
	{KeyIntensity, "02"},
	{KeyColor, "05"},
	{KeyDepth, "_0"},
	{KeyL, "01"},
	{KeyF, "00"},
	{KeyE, "00"},
}

// StartupSequence returns the 18-command burst sent on power-on: every
// startup key to Left, Right then Middle.
func StartupSequence() []Command {
	out := make([]Command, 0, len(startupKeys)*len(FanOut))
	for _, s := range startupKeys {
		for _, ch := range FanOut {
			out = append(out, Make(s.key, s.value, ch))
		}
	}
	return out
}

// SenderSequence is the canonical command cycle of the stand-alone sender.
func SenderSequence() []Command {
	out := make([]Command, 0, Intensity.Len()-1+Color.Len()+Depth.Len())
	for i := 1; i < Intensity.Len(); i++ {
		out = append(out, Intensity.At(Index(i)))
	}
	for i := 0; i < Color.Len(); i++ {
		out = append(out, Color.At(Index(i)))
	}
	for i := Depth.Len() - 1; i >= 0; i-- {
		out = append(out, Depth.At(Index(i)))
	}
	return out
}
