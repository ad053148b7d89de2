// Package diag logs what the rest of the firmware reports on the bus and
// emits a periodic heartbeat with link counters.
package diag

import (
	"context"
	"log/slog"
	"time"

	"domeremote-go/bus"
	"domeremote-go/services/internal/util"
	"domeremote-go/types"
)

var (
	topicConfigDiag = bus.T("config", "diag")
	topicRadio      = bus.T("radio", "+")
	topicRemote     = bus.T("remote", "state")
)

// CounterSource reports link counters for the heartbeat.
type CounterSource interface {
	Counters() types.Counters
}

type Service struct {
	log      *slog.Logger
	counters CounterSource
	beats    uint32
}

func New(log *slog.Logger, counters CounterSource) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log, counters: counters}
}

// Start runs the service loop in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.serviceLoop(ctx, conn)
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigDiag)
	defer conn.Unsubscribe(cfgSub)
	radioSub := conn.Subscribe(topicRadio)
	defer conn.Unsubscribe(radioSub)
	remoteSub := conn.Subscribe(topicRemote)
	defer conn.Unsubscribe(remoteSub)

	tick := time.NewTicker(10 * time.Second)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("diag stopping")
			return
		case <-tick.C:
			s.heartbeat()
		case msg := <-cfgSub.Channel():
			var cfg types.DiagConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil || cfg.Interval <= 0 {
				s.log.Warn("bad diag config", "payload", msg.Payload, "err", err)
				continue
			}
			tick.Reset(time.Duration(cfg.Interval) * time.Second)
			s.log.Info("heartbeat interval set", "seconds", cfg.Interval)
		case msg := <-radioSub.Channel():
			s.logRadio(msg)
		case msg := <-remoteSub.Channel():
			if st, ok := msg.Payload.(types.RemoteState); ok {
				s.log.Info("remote", "powered", st.Powered, "mode", st.Mode,
					"intensity", st.Intensity, "color", st.Color, "depth", st.Depth)
			}
		}
	}
}

func (s *Service) heartbeat() {
	s.beats++
	if s.counters == nil {
		s.log.Info("heartbeat", "n", s.beats)
		return
	}
	c := s.counters.Counters()
	s.log.Info("heartbeat", "n", s.beats,
		"queued", c.Queued, "sent", c.Sent, "failed", c.Failed, "dropped", c.Dropped)
}

func (s *Service) logRadio(msg *bus.Message) {
	switch p := msg.Payload.(type) {
	case types.LinkState:
		if p.Level == types.LinkUp || p.Level == types.LinkIdle {
			s.log.Info("radio link", "level", string(p.Level), "status", p.Status)
		} else {
			s.log.Warn("radio link", "level", string(p.Level), "status", p.Status, "err", p.Error)
		}
	case types.SendStatus:
		if !p.OK {
			s.log.Warn("send failed", "seq", p.Seq, "code", p.Code)
		} else {
			s.log.Debug("send ok", "seq", p.Seq)
		}
	case types.Received:
		s.log.Debug("heard", "data", string(p.Data))
	case types.Counters:
		s.log.Debug("radio stats", "sent", p.Sent, "failed", p.Failed, "dropped", p.Dropped)
	}
}
