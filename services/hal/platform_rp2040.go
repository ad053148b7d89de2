//go:build rp2040

package hal

import (
	"context"
	"io"
	"log/slog"
	"machine"
	"time"

	"domeremote-go/errcode"
	"domeremote-go/services/radiolink"
	"domeremote-go/types"
	"domeremote-go/x/mathx"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// BootDelay lets USB CDC enumerate before the first log line.
const BootDelay = 2 * time.Second

func LogWriter() io.Writer { return machine.Serial }

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(b bool) { r.p.Set(b) }
func (r *rp2Pin) Get() bool  { return r.p.Get() }

type rp2PinFactory struct{}

// RP2040 exposes GPIO0..GPIO29.
func (rp2PinFactory) ByNumber(n int) (GPIOPin, bool) {
	if !mathx.Between(n, 0, 29) {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

func DefaultPinFactory() PinFactory { return rp2PinFactory{} }

// NewIndicator drives a WS2812 pixel when one is configured, else the mode
// LEDs.
func NewIndicator(f PinFactory, cfg types.LEDPins, log *slog.Logger) (Indicator, error) {
	if cfg.WS2812 >= 0 {
		if !mathx.Between(cfg.WS2812, 0, 29) {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "hal.ws2812"}
		}
		return NewPixelIndicator(machine.Pin(cfg.WS2812)), nil
	}
	return NewLEDIndicator(f, cfg)
}

// ---- UART ----

// uartxStream adapts the interrupt-driven uartx driver to io.ReadWriteCloser.
type uartxStream struct {
	u      *uartx.UART
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *uartxStream) Read(p []byte) (int, error) {
	n, err := s.u.RecvSomeContext(s.ctx, p)
	if s.ctx.Err() != nil {
		return n, io.EOF
	}
	return n, err
}

func (s *uartxStream) Write(p []byte) (int, error) {
	if s.ctx.Err() != nil {
		return 0, io.ErrClosedPipe
	}
	return s.u.Write(p)
}

func (s *uartxStream) Close() error { s.cancel(); return nil }

// DialUART opens the radio UART. Driver "machine" polls the stock TinyGo
// UART; anything else uses uartx.
func DialUART(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error) {
	tx, rx := machine.Pin(u.TxPin), machine.Pin(u.RxPin)

	if u.Driver == "machine" {
		var hw *machine.UART
		switch u.ID {
		case "uart0":
			hw = machine.UART0
		case "uart1":
			hw = machine.UART1
		default:
			return nil, errcode.UnknownUART
		}
		if err := hw.Configure(machine.UARTConfig{BaudRate: u.Baud, TX: tx, RX: rx}); err != nil {
			return nil, errcode.Wrap(errcode.Error, "hal.uart", err)
		}
		return radiolink.NewUARTStream(hw, time.Millisecond), nil
	}

	var hw *uartx.UART
	switch u.ID {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errcode.UnknownUART
	}
	if err := hw.Configure(uartx.UARTConfig{BaudRate: u.Baud, TX: tx, RX: rx}); err != nil {
		return nil, errcode.Wrap(errcode.Error, "hal.uart", err)
	}
	if err := hw.SetFormat(8, 1, uartx.ParityNone); err != nil {
		return nil, errcode.Wrap(errcode.Error, "hal.uart", err)
	}
	cctx, cancel := context.WithCancel(ctx)
	return &uartxStream{u: hw, ctx: cctx, cancel: cancel}, nil
}
