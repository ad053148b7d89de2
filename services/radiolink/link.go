// Package radiolink owns the UART link to the radio co-processor that
// performs the actual broadcast.
package radiolink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"domeremote-go/bus"
	"domeremote-go/errcode"
	"domeremote-go/protocol"
	"domeremote-go/services/internal/util"
	"domeremote-go/types"
	"domeremote-go/x/timex"
)

var (
	topicConfig = bus.T("config", "radio")
	TopicState  = bus.T("radio", "state")
	TopicStatus = bus.T("radio", "status")
	TopicRx     = bus.T("radio", "rx")
	TopicStats  = bus.T("radio", "stats")
)

const (
	defaultQueueLen = 32
	defaultPing     = 5 * time.Second
)

// Link queues broadcasts for the co-processor and supervises the transport.
// Broadcast may be called from any goroutine.
type Link struct {
	conn *bus.Connection
	log  *slog.Logger
	out  chan []byte

	queued  atomic.Uint32
	sent    atomic.Uint32
	failed  atomic.Uint32
	dropped atomic.Uint32
	seq     atomic.Uint32

	mu     sync.Mutex
	curRun context.CancelFunc
}

// New returns a Link with an outbound queue of queueLen frames.
func New(conn *bus.Connection, log *slog.Logger, queueLen int) *Link {
	if queueLen <= 0 {
		queueLen = defaultQueueLen
	}
	if log == nil {
		log = slog.Default()
	}
	return &Link{conn: conn, log: log, out: make(chan []byte, queueLen)}
}

// Broadcast enqueues b without blocking. A full queue drops b and returns
// errcode.Busy. Success only means the frame was queued.
func (l *Link) Broadcast(b []byte) error {
	select {
	case l.out <- append([]byte(nil), b...):
		l.queued.Add(1)
		return nil
	default:
		l.dropped.Add(1)
		return errcode.Wrap(errcode.Busy, "radio.broadcast", nil)
	}
}

// Counters returns a snapshot of the link counters.
func (l *Link) Counters() types.Counters {
	return types.Counters{
		Queued:  l.queued.Load(),
		Sent:    l.sent.Load(),
		Failed:  l.failed.Load(),
		Dropped: l.dropped.Load(),
	}
}

// Run waits for "config/radio" and supervises one link instance per config.
// It blocks until ctx is cancelled.
func (l *Link) Run(ctx context.Context) {
	cfgSub := l.conn.Subscribe(topicConfig)
	defer l.conn.Unsubscribe(cfgSub)

	l.publishState(types.LinkIdle, "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			l.stopCurrent()
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				l.publishState(types.LinkError, "config_subscription_closed", nil)
				return
			}
			var cfg types.RadioConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				l.publishState(types.LinkError, "config_decode_failed", err)
				continue
			}
			l.reconfigure(ctx, cfg)
		}
	}
}

func (l *Link) stopCurrent() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.curRun != nil {
		l.curRun()
		l.curRun = nil
	}
}

func (l *Link) reconfigure(parent context.Context, cfg types.RadioConfig) {
	l.mu.Lock()
	if l.curRun != nil {
		l.curRun()
	}
	ctx, cancel := context.WithCancel(parent)
	l.curRun = cancel
	l.mu.Unlock()

	go l.runLink(ctx, cfg)
}

func (l *Link) runLink(ctx context.Context, cfg types.RadioConfig) {
	tr, err := newTransport(cfg)
	if err != nil {
		l.publishState(types.LinkError, "transport_init_failed", err)
		return
	}
	ping := defaultPing
	if cfg.PingSec > 0 {
		ping = time.Duration(cfg.PingSec) * time.Second
	}

	backoff := util.Backoff(250*time.Millisecond, 5*time.Second)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		rwc, err := tr.Open(ctx)
		if err != nil {
			delay := backoff()
			l.publishState(types.LinkDegraded, "dial_failed_retrying", fmt.Errorf("%v (retry in %s)", err, delay))
			if !util.Sleep(ctx, delay) {
				return
			}
			continue
		}

		l.publishState(types.LinkUp, "link_established", nil)
		l.log.Info("radio link up", "transport", tr.String())
		if err := l.handleLink(ctx, rwc, ping); err != nil {
			_ = rwc.Close()
			delay := backoff()
			l.log.Warn("radio link lost", "err", err, "retry", delay)
			l.publishState(types.LinkDegraded, "link_lost_retrying", fmt.Errorf("%v (retry in %s)", err, delay))
			if !util.Sleep(ctx, delay) {
				return
			}
			continue
		}
		_ = rwc.Close()
		return
	}
}

// handleLink drains the outbound queue onto rwc and routes inbound frames to
// the bus until ctx ends or the stream fails.
func (l *Link) handleLink(ctx context.Context, rwc io.ReadWriteCloser, ping time.Duration) error {
	rd := newFramedReader(rwc)
	wr := newFramedWriter(rwc)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			f, err := rd.ReadFrame()
			if err != nil {
				errCh <- err
				return
			}
			l.handleFrame(f)
		}
	}()

	tick := time.NewTicker(ping)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = wr.WriteFrame(Frame{Type: frameClose})
			return nil
		case err := <-errCh:
			if err == nil {
				err = io.EOF
			}
			return err
		case b := <-l.out:
			if err := wr.WriteFrame(Frame{Type: frameTx, Payload: b}); err != nil {
				l.failed.Add(1)
				return errcode.Wrap(errcode.LinkDown, "radio.write", err)
			}
		case <-tick.C:
			if err := wr.WriteFrame(Frame{Type: framePing}); err != nil {
				return err
			}
			l.conn.Publish(l.conn.NewMessage(TopicStats, l.Counters(), false))
		}
	}
}

func (l *Link) handleFrame(f Frame) {
	now := timex.NowMs()
	switch f.Type {
	case frameStatus:
		st := types.SendStatus{OK: true, Seq: l.seq.Add(1), TS: now}
		if len(f.Payload) > 0 && f.Payload[0] != 0 {
			st.OK, st.Code = false, f.Payload[0]
		}
		if st.OK {
			l.sent.Add(1)
		} else {
			l.failed.Add(1)
			l.log.Warn("broadcast rejected", "seq", st.Seq, "err", errcode.TxRejected, "code", st.Code)
		}
		l.conn.Publish(l.conn.NewMessage(TopicStatus, st, false))
	case frameRx:
		if fr, err := protocol.Parse(f.Payload); err == nil {
			l.log.Debug("rx", "key", string(fr.Key), "value", fr.Value, "ch", fr.Channel.String())
		} else {
			l.log.Debug("rx", "len", len(f.Payload), "err", err)
		}
		l.conn.Publish(l.conn.NewMessage(TopicRx, types.Received{Data: f.Payload, TS: now}, false))
	case framePong:
	default:
		l.log.Debug("unknown frame", "type", f.Type)
	}
}

func (l *Link) publishState(level types.Link, status string, err error) {
	st := types.LinkState{Level: level, Status: status, TS: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	l.conn.Publish(l.conn.NewMessage(TopicState, st, true))
}
