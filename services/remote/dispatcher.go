package remote

import (
	"log/slog"
	"time"

	"domeremote-go/protocol"
	"domeremote-go/x/timex"
)

// Broadcaster is the radio. Broadcast is fire-and-forget: a nil error means
// the frame was handed to the radio, not that anyone heard it.
type Broadcaster interface {
	Broadcast(b []byte) error
}

// Dispatcher fans one canonical command out to every channel with a short
// gap between sends.
type Dispatcher struct {
	radio     Broadcaster
	clock     timex.Clock
	log       *slog.Logger
	channels  []protocol.Channel
	interSend time.Duration

	sent   uint32
	failed uint32
}

// NewDispatcher sends to channels in the given order (protocol.FanOut when
// empty).
func NewDispatcher(radio Broadcaster, clock timex.Clock, log *slog.Logger, interSend time.Duration, channels ...protocol.Channel) *Dispatcher {
	if len(channels) == 0 {
		channels = protocol.FanOut[:]
	}
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		radio:     radio,
		clock:     clock,
		log:       log,
		channels:  channels,
		interSend: interSend,
	}
}

// Dispatch fans cmd out while s is powered and records the activity time
// once the last send is done. It reports whether anything was sent.
func (d *Dispatcher) Dispatch(s *State, cmd protocol.Command) bool {
	if !s.Powered {
		return false
	}
	d.FanOut(cmd)
	s.Activity = d.clock.NowMs()
	return true
}

// FanOut sends cmd unmodified, then each further channel variant. Radio
// errors are logged and otherwise ignored.
func (d *Dispatcher) FanOut(cmd protocol.Command) {
	for i, ch := range d.channels {
		if i > 0 {
			d.clock.Sleep(d.interSend)
		}
		d.send(protocol.WithChannel(cmd, ch))
	}
}

// Sequence sends cmds verbatim with gap between each. It ignores power and
// does not count as activity.
func (d *Dispatcher) Sequence(cmds []protocol.Command, gap time.Duration) {
	for i, c := range cmds {
		if i > 0 {
			d.clock.Sleep(gap)
		}
		d.send(c)
	}
}

func (d *Dispatcher) send(cmd protocol.Command) {
	if err := d.radio.Broadcast(cmd.Bytes()); err != nil {
		d.failed++
		d.log.Warn("broadcast failed", "cmd", string(cmd), "err", err)
		return
	}
	d.sent++
	d.log.Debug("broadcast", "cmd", string(cmd))
}

// Counts reports sends handed to the radio and sends it refused.
func (d *Dispatcher) Counts() (sent, failed uint32) { return d.sent, d.failed }
