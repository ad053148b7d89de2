// Package sender cycles a fixed command sequence with no user input.
package sender

import (
	"context"
	"log/slog"
	"time"

	"domeremote-go/bus"
	"domeremote-go/protocol"
	"domeremote-go/services/internal/util"
	"domeremote-go/services/remote"
	"domeremote-go/types"
	"domeremote-go/x/timex"
)

var topicConfigSender = bus.T("config", "sender")

type Service struct {
	conn  *bus.Connection
	radio remote.Broadcaster
	clock timex.Clock
	log   *slog.Logger

	period time.Duration
	disp   *remote.Dispatcher
	seq    []protocol.Command
}

func New(conn *bus.Connection, radio remote.Broadcaster, clock timex.Clock, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{conn: conn, radio: radio, clock: clock, log: log, seq: protocol.SenderSequence()}
	s.configure(types.DefaultSenderConfig())
	return s
}

// parseChannels keeps the valid entries of names, in order.
func parseChannels(names []string) []protocol.Channel {
	var out []protocol.Channel
	for _, n := range names {
		if len(n) != 1 {
			continue
		}
		if ch := protocol.Channel(n[0]); ch.Valid() {
			out = append(out, ch)
		}
	}
	return out
}

func (s *Service) configure(cfg types.SenderConfig) {
	s.period = util.Ms(cfg.PeriodMs, 2*time.Second)
	chans := parseChannels(cfg.Channels)
	if len(chans) == 0 {
		chans = parseChannels(types.DefaultSenderConfig().Channels)
	}
	s.disp = remote.NewDispatcher(s.radio, s.clock, s.log, 0, chans...)
}

// Run sends one sequence entry to every channel, then waits the period,
// wrapping at the end of the sequence. It blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfigSender)
	defer s.conn.Unsubscribe(cfgSub)

	s.log.Info("sender running", "commands", len(s.seq), "period", s.period)

	wait := time.NewTimer(0)
	defer wait.Stop()

	for i := 0; ; {
		select {
		case <-ctx.Done():
			s.log.Info("sender stopping")
			return
		case msg := <-cfgSub.Channel():
			var cfg types.SenderConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				s.log.Warn("bad sender config", "err", err)
				continue
			}
			s.configure(cfg)
			wait.Reset(s.period)
			s.log.Info("sender config applied", "period", s.period, "channels", cfg.Channels)
		case <-wait.C:
			s.disp.FanOut(s.seq[i])
			i = (i + 1) % len(s.seq)
			wait.Reset(s.period)
		}
	}
}
