package sender

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"domeremote-go/bus"
	"domeremote-go/protocol"
	"domeremote-go/x/timex"
)

type recRadio struct {
	mu   sync.Mutex
	sent []string
}

func (r *recRadio) Broadcast(b []byte) error {
	r.mu.Lock()
	r.sent = append(r.sent, string(b))
	r.mu.Unlock()
	return nil
}

func (r *recRadio) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func (r *recRadio) waitN(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := r.snapshot(); len(s) >= n {
			return s
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("only %d sends, want %d", len(r.snapshot()), n)
	return nil
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestSender_CyclesSequenceToLeftAndRight(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("sender")
	conn.Publish(conn.NewMessage(topicConfigSender, map[string]any{"period_ms": 1, "channels": []any{"L", "R"}}, true))

	r := &recRadio{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(conn, r, timex.NewSystem(), quiet()).Run(ctx)

	seq := protocol.SenderSequence()
	got := r.waitN(t, 2*len(seq)+2)
	for i, cmd := range seq {
		if got[2*i] != string(cmd) || got[2*i+1] != string(protocol.WithChannel(cmd, protocol.Right)) {
			t.Fatalf("entry %d: got %q %q for %q", i, got[2*i], got[2*i+1], cmd)
		}
	}
	if got[2*len(seq)] != string(seq[0]) {
		t.Fatalf("sequence did not wrap: %q", got[2*len(seq)])
	}
}

func TestSender_ChannelConfig(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("sender")
	conn.Publish(conn.NewMessage(topicConfigSender, []byte(`{"period_ms":1,"channels":["M","x"]}`), true))

	r := &recRadio{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(conn, r, timex.NewSystem(), quiet()).Run(ctx)

	got := r.waitN(t, 6)
	for _, s := range got[len(got)-2:] {
		if s[len(s)-1] != 'M' {
			t.Fatalf("sent %q, want middle channel only", s)
		}
	}
}

func TestParseChannels(t *testing.T) {
	got := parseChannels([]string{"R", "", "LL", "Q", "M"})
	if len(got) != 2 || got[0] != protocol.Right || got[1] != protocol.Middle {
		t.Fatalf("got %v", got)
	}
}
