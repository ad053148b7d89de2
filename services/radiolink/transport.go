package radiolink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"domeremote-go/types"
)

// Transport opens the byte stream to the radio co-processor.
type Transport interface {
	Open(ctx context.Context) (io.ReadWriteCloser, error)
	String() string
}

// Factory builds a Transport from the radio config.
type Factory func(types.RadioConfig) (Transport, error)

var (
	regMu     sync.RWMutex
	registry  = map[string]Factory{}
	errNoDial = errors.New("UARTDial not set")
)

// RegisterTransport adds or replaces a named transport.
func RegisterTransport(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = f
}

func newTransport(cfg types.RadioConfig) (Transport, error) {
	regMu.RLock()
	f, ok := registry[cfg.Transport]
	regMu.RUnlock()
	if ok {
		return f(cfg)
	}
	switch cfg.Transport {
	case "uart":
		return newUARTTransport(cfg)
	case "stub":
		return NewStubTransport(NewStub()), nil
	default:
		return nil, fmt.Errorf("unknown transport type: %q", cfg.Transport)
	}
}

// UARTDial is set by platform code. It opens the configured UART.
var UARTDial func(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error)

type uartTransport struct {
	cfg types.UARTConfig
}

func newUARTTransport(cfg types.RadioConfig) (Transport, error) {
	if cfg.UART == nil {
		return nil, errors.New("uart transport requires uart config")
	}
	return &uartTransport{cfg: *cfg.UART}, nil
}

func (u *uartTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	if UARTDial == nil {
		return nil, errNoDial
	}
	return UARTDial(ctx, u.cfg)
}

func (u *uartTransport) String() string { return "uart:" + u.cfg.ID }

// stubTransport connects to an in-process Stub over a pipe.
type stubTransport struct{ s *Stub }

// NewStubTransport returns a Transport whose far end is served by s.
func NewStubTransport(s *Stub) Transport { return &stubTransport{s: s} }

func (t *stubTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	local, remote := net.Pipe()
	go func() { _ = t.s.Serve(remote) }()
	return local, nil
}

func (t *stubTransport) String() string { return "stub" }
