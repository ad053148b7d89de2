//go:build !rp2040

package hal

import (
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"domeremote-go/services/radiolink"
	"domeremote-go/types"
)

// BootDelay is how long main waits before logging.
const BootDelay time.Duration = 0

// LogWriter is where the firmware logs go.
func LogWriter() io.Writer { return os.Stderr }

// FakePin is an in-memory GPIO pin for host builds and tests. Inputs idle
// high so active-low buttons read as released.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    Pull
}

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.level = pull != PullDown
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports whether the pin was last configured as an output.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.Pin(n), true
}

// Pin exposes the underlying *FakePin so tests and simulators can drive it.
func (f *HostPinFactory) Pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n, level: true}
		f.pins[n] = p
	}
	return p
}

// DefaultPinFactory provides the host GPIO factory.
func DefaultPinFactory() PinFactory { return &HostPinFactory{} }

// NewIndicator returns the mode LEDs. The host has no RGB pixel.
func NewIndicator(f PinFactory, cfg types.LEDPins, log *slog.Logger) (Indicator, error) {
	if cfg.WS2812 >= 0 && log != nil {
		log.Info("ws2812 indicator not available on host, using LEDs")
	}
	return NewLEDIndicator(f, cfg)
}

// HostStub is the simulated radio co-processor behind DialUART.
var HostStub = radiolink.NewStub()

// DialUART connects to HostStub over an in-memory pipe.
func DialUART(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error) {
	local, remote := net.Pipe()
	go func() { _ = HostStub.Serve(remote) }()
	return local, nil
}
