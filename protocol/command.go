// Package protocol holds the ASCII command grammar spoken to the receivers:
//
//	@ <key:1> <value:2> # T <channel:1>
//
// e.g. "@I02#TL". Every command is exactly CommandLen bytes so the channel
// can be swapped by replacing the final byte.
package protocol

import "domeremote-go/errcode"

const (
	CommandLen = 7

	startByte  = '@'
	sepByte    = '#'
	targetByte = 'T'
)

var (
	ErrMalformed  = errcode.Malformed
	ErrUnknownKey = errcode.UnknownKey
	ErrBadChannel = errcode.BadChannel
)

// Channel is the trailing marker naming a logical receiver.
type Channel byte

const (
	Left   Channel = 'L'
	Right  Channel = 'R'
	Middle Channel = 'M'
)

// FanOut is the order a canonical command is sent to the receivers.
var FanOut = [...]Channel{Left, Right, Middle}

func (c Channel) Valid() bool { return c == Left || c == Right || c == Middle }

func (c Channel) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	default:
		return "?"
	}
}

// Key selects the receiver parameter a command sets.
type Key byte

const (
	KeyIntensity Key = 'I'
	KeyColor     Key = 'C'
	KeyDepth     Key = 'D'
	// Sent only by the startup sequence.
	KeyL Key = 'L'
	KeyF Key = 'F'
	KeyE Key = 'E'
)

func (k Key) Valid() bool {
	switch k {
	case KeyIntensity, KeyColor, KeyDepth, KeyL, KeyF, KeyE:
		return true
	}
	return false
}

// Command is one wire command.
type Command string

// Make builds the command for key/value on channel ch. value must be two bytes.
func Make(k Key, value string, ch Channel) Command {
	var b [CommandLen]byte
	b[0] = startByte
	b[1] = byte(k)
	b[2] = value[0]
	b[3] = value[1]
	b[4] = sepByte
	b[5] = targetByte
	b[6] = byte(ch)
	return Command(b[:])
}

// WithChannel returns cmd retargeted to ch. Only the last byte changes.
func WithChannel(cmd Command, ch Channel) Command {
	if len(cmd) == 0 {
		return cmd
	}
	b := []byte(cmd)
	b[len(b)-1] = byte(ch)
	return Command(b)
}

func (c Command) Channel() Channel {
	if len(c) == 0 {
		return 0
	}
	return Channel(c[len(c)-1])
}

func (c Command) Bytes() []byte { return []byte(c) }

// Frame is a decoded command.
type Frame struct {
	Key     Key
	Value   string
	Channel Channel
}

func (f Frame) Command() Command { return Make(f.Key, f.Value, f.Channel) }

// Parse validates b against the command grammar.
func Parse(b []byte) (Frame, error) {
	if len(b) != CommandLen || b[0] != startByte || b[4] != sepByte || b[5] != targetByte {
		return Frame{}, ErrMalformed
	}
	k := Key(b[1])
	if !k.Valid() {
		return Frame{}, ErrUnknownKey
	}
	ch := Channel(b[6])
	if !ch.Valid() {
		return Frame{}, ErrBadChannel
	}
	return Frame{Key: k, Value: string(b[2:4]), Channel: ch}, nil
}
