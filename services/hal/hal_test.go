//go:build !rp2040

package hal

import (
	"context"
	"testing"
	"time"

	"domeremote-go/errcode"
	"domeremote-go/types"
)

func TestParsePull(t *testing.T) {
	cases := map[string]Pull{"": PullUp, "up": PullUp, "down": PullDown, "none": PullNone}
	for in, want := range cases {
		got, err := ParsePull(in)
		if err != nil || got != want {
			t.Fatalf("ParsePull(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePull("sideways"); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("bad pull err = %v", err)
	}
}

func TestButtons_ActiveLowLevels(t *testing.T) {
	f := &HostPinFactory{}
	cfg := types.DefaultRemoteConfig().Buttons
	b, err := NewButtons(f, cfg)
	if err != nil {
		t.Fatalf("NewButtons: %v", err)
	}
	for id := types.ButtonID(0); id < types.NumButtons; id++ {
		if !b.ReadLevel(id) {
			t.Fatalf("%s reads low with nothing pressed", id)
		}
	}
	f.Pin(cfg.Up).Set(false)
	if b.ReadLevel(types.ButtonUp) {
		t.Fatal("pressed Up should read low")
	}
	if !b.ReadLevel(types.ButtonMode) || !b.ReadLevel(types.NumButtons) {
		t.Fatal("other buttons should still read high")
	}
}

func TestButtons_UnknownPin(t *testing.T) {
	_, err := NewButtons(&HostPinFactory{}, types.ButtonPins{Mode: -1, Up: 1, Down: 2})
	if errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("err = %v, want unknown pin", err)
	}
}

func TestLEDIndicator_OneLitWhilePowered(t *testing.T) {
	f := &HostPinFactory{}
	cfg := types.DefaultRemoteConfig().LEDs
	ind, err := NewIndicator(f, cfg, nil)
	if err != nil {
		t.Fatalf("NewIndicator: %v", err)
	}
	pins := []*FakePin{f.Pin(cfg.Intensity), f.Pin(cfg.Color), f.Pin(cfg.Depth)}
	for _, p := range pins {
		if !p.IsOutput() || p.Get() {
			t.Fatalf("pin %d should be an output and start off", p.Number())
		}
	}

	ind.SetIndicator(types.ModeColor, true)
	if pins[0].Get() || !pins[1].Get() || pins[2].Get() {
		t.Fatal("only the color LED should be lit")
	}
	ind.SetIndicator(types.ModeColor, false)
	for _, p := range pins {
		if p.Get() {
			t.Fatalf("pin %d lit while off", p.Number())
		}
	}
}

func TestDialUART_HostStubAnswers(t *testing.T) {
	rwc, err := DialUART(context.Background(), types.UARTConfig{ID: "uart1"})
	if err != nil {
		t.Fatalf("DialUART: %v", err)
	}
	defer rwc.Close()

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 4)
		n, _ := rwc.Read(buf)
		done <- buf[:n]
	}()
	if _, err := rwc.Write([]byte{0x20, 0x00, 0x01, 'x'}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	select {
	case b := <-done:
		if len(b) < 1 || b[0] != 0x21 {
			t.Fatalf("reply = % x, want a status frame", b)
		}
	case <-time.After(time.Second):
		t.Fatal("no reply from host stub")
	}
}
