package types

// ---- Link state (retained) ----

// Link is the state reported for the radio link.
type Link string

const (
	LinkIdle     Link = "idle"
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
	LinkError    Link = "error"
)

type LinkState struct {
	Level  Link   `json:"level"`
	Status string `json:"status"` // short machine string
	TS     int64  `json:"ts_ms"`
	Error  string `json:"error,omitempty"`
}

// ---- Radio notifications ----

// SendStatus is the asynchronous result of one broadcast, as reported by the
// radio. It is diagnostic only.
type SendStatus struct {
	OK   bool   `json:"ok"`
	Code uint8  `json:"code,omitempty"`
	Seq  uint32 `json:"seq"`
	TS   int64  `json:"ts_ms"`
}

// Received is a frame heard on the broadcast channel.
type Received struct {
	Data []byte `json:"data"`
	TS   int64  `json:"ts_ms"`
}

// ---- Buttons ----

type ButtonID uint8

const (
	ButtonMode ButtonID = iota // primary: power + mode cycling
	ButtonUp                   // increment active slider
	ButtonDown                 // decrement active slider
	NumButtons
)

func (b ButtonID) String() string {
	switch b {
	case ButtonMode:
		return "mode"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	default:
		return "?"
	}
}

// ---- Controller state (retained on remote/state) ----

type RemoteState struct {
	Powered   bool   `json:"powered"`
	Mode      string `json:"mode"`
	Intensity uint8  `json:"intensity"`
	Color     uint8  `json:"color"`
	Depth     uint8  `json:"depth"`
	Activity  int64  `json:"activity_ms"`
	TS        int64  `json:"ts_ms"`
}

// Counters is published by the radio link on radio/stats.
type Counters struct {
	Queued  uint32 `json:"queued"`
	Sent    uint32 `json:"sent"`
	Failed  uint32 `json:"failed"`
	Dropped uint32 `json:"dropped"`
}

// ---- Modes ----

// Mode names the slider the Up/Down buttons act on. Modes cycle in order.
type Mode uint8

const (
	ModeIntensity Mode = iota
	ModeColor
	ModeDepth
	NumModes
)

// Next returns the following mode, wrapping after the last.
func (m Mode) Next() Mode { return (m + 1) % NumModes }

func (m Mode) String() string {
	switch m {
	case ModeIntensity:
		return "intensity"
	case ModeColor:
		return "color"
	case ModeDepth:
		return "depth"
	default:
		return "?"
	}
}
