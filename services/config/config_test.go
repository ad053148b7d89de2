package config

import (
	"context"
	"testing"
	"time"

	"domeremote-go/bus"
	"domeremote-go/services/internal/util"
	"domeremote-go/types"
)

func collect(t *testing.T, sub *bus.Subscription, want int) map[string]any {
	t.Helper()
	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < want && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if m.Topic.Len() != 2 || m.Topic.At(0) != configPrefix {
				t.Fatalf("unexpected topic %s", m.Topic)
			}
			if !m.Retained {
				t.Fatalf("%s not retained", m.Topic)
			}
			got[m.Topic.At(1).(string)] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	return got
}

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "remote" {
			return nil, false
		}
		return []byte(`{
			"mode": "dev",
			"debug": true,
			"region": {"code": "eu"}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	NewConfigService(nil).Start(WithDevice(context.Background(), "remote"), conn)

	sub := conn.Subscribe(bus.T(configPrefix, "#"))
	got := collect(t, sub, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 retained messages, got %d (%v)", len(got), got)
	}
	if s, ok := got["mode"].(string); !ok || s != "dev" {
		t.Fatalf("mode payload = %#v", got["mode"])
	}
	if v, ok := got["debug"].(bool); !ok || !v {
		t.Fatalf("debug payload = %#v", got["debug"])
	}
	if m, ok := got["region"].(map[string]any); !ok || m["code"] != "eu" {
		t.Fatalf("region payload = %#v", got["region"])
	}
}

func TestConfig_EmbeddedRemoteDecodes(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-remote")
	if err := NewConfigService(nil).publishConfig(WithDevice(context.Background(), "remote"), conn); err != nil {
		t.Fatalf("publishConfig: %v", err)
	}

	got := collect(t, conn.Subscribe(bus.T(configPrefix, "#")), 3)

	var rc types.RemoteConfig
	if err := util.DecodeJSON(got["remote"], &rc); err != nil {
		t.Fatalf("decode remote: %v", err)
	}
	if rc != types.DefaultRemoteConfig() {
		t.Fatalf("embedded remote config drifted from defaults: %+v", rc)
	}

	var radio types.RadioConfig
	if err := util.DecodeJSON(got["radio"], &radio); err != nil {
		t.Fatalf("decode radio: %v", err)
	}
	if radio.Transport != "uart" || radio.UART == nil || radio.UART.Baud != 115200 {
		t.Fatalf("radio = %+v", radio)
	}
}

func TestConfig_EmbeddedSenderDecodes(t *testing.T) {
	raw, ok := EmbeddedConfigLookup("sender")
	if !ok {
		t.Fatal("no sender config")
	}
	var doc struct {
		Sender types.SenderConfig `json:"sender"`
	}
	if err := util.DecodeJSON(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	def := types.DefaultSenderConfig()
	if doc.Sender.PeriodMs != def.PeriodMs || len(doc.Sender.Channels) != 2 {
		t.Fatalf("sender = %+v", doc.Sender)
	}
}

func TestConfig_PublishConfig_MissingDevice(t *testing.T) {
	conn := bus.NewBus(4).NewConnection("test-missing-device")
	if err := NewConfigService(nil).publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestConfig_PublishConfig_NoConfigFound(t *testing.T) {
	conn := bus.NewBus(4).NewConnection("test-no-config")
	ctx := WithDevice(context.Background(), "unknown-device")
	if err := NewConfigService(nil).publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}

func TestConfig_PublishConfig_NotAnObject(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(string) ([]byte, bool) { return []byte(`[1,2]`), true }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	conn := bus.NewBus(4).NewConnection("test-bad")
	if err := NewConfigService(nil).publishConfig(WithDevice(context.Background(), "x"), conn); err == nil {
		t.Fatal("expected error for non-object config")
	}
}
