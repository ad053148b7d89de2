package remote

import (
	"context"
	"log/slog"
	"time"

	"domeremote-go/bus"
	"domeremote-go/services/internal/util"
	"domeremote-go/types"
)

var (
	topicConfigRemote = bus.T("config", "remote")
	TopicState        = bus.T("remote", "state")
)

// Service runs a Controller on a fixed tick and publishes its state.
type Service struct {
	conn *bus.Connection
	ctl  *Controller
	log  *slog.Logger

	last types.RemoteState
}

func NewService(conn *bus.Connection, ctl *Controller, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{conn: conn, ctl: ctl, log: log}
}

func (s *Service) Controller() *Controller { return s.ctl }

// Run ticks the controller until ctx is cancelled. New "config/remote"
// documents are applied between ticks.
func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfigRemote)
	defer s.conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.ctl.Timing().Tick)
	defer tick.Stop()

	s.publish(true)
	s.log.Info("remote controller running", "tick", s.ctl.Timing().Tick)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("remote controller stopping")
			return
		case msg := <-cfgSub.Channel():
			var cfg types.RemoteConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				s.log.Warn("bad remote config", "err", err)
				continue
			}
			t := TimingFrom(cfg)
			if t == s.ctl.Timing() {
				continue
			}
			s.ctl.Configure(t)
			tick.Reset(t.Tick)
			s.log.Info("remote config applied", "tick", t.Tick, "idle", t.Idle)
		case <-tick.C:
			s.ctl.Tick()
			s.publish(false)
		}
	}
}

// publish sends the retained state when anything but the timestamp changed.
func (s *Service) publish(force bool) {
	st := s.ctl.Snapshot()
	cmp := st
	cmp.TS = s.last.TS
	if !force && cmp == s.last {
		return
	}
	s.last = st
	s.conn.Publish(s.conn.NewMessage(TopicState, st, true))
}
