package radiolink

import (
	"io"
	"sync/atomic"
	"time"

	"tinygo.org/x/drivers"
)

// UARTStream turns a polled drivers.UART into a blocking
// io.ReadWriteCloser. Read waits until bytes are buffered.
type UARTStream struct {
	u      drivers.UART
	poll   time.Duration
	closed atomic.Bool
}

func NewUARTStream(u drivers.UART, poll time.Duration) *UARTStream {
	if poll <= 0 {
		poll = time.Millisecond
	}
	return &UARTStream{u: u, poll: poll}
}

func (s *UARTStream) Read(p []byte) (int, error) {
	for {
		if s.closed.Load() {
			return 0, io.EOF
		}
		if s.u.Buffered() > 0 {
			return s.u.Read(p)
		}
		time.Sleep(s.poll)
	}
}

func (s *UARTStream) Write(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return s.u.Write(p)
}

// Close stops further I/O. The UART itself stays configured.
func (s *UARTStream) Close() error {
	s.closed.Store(true)
	return nil
}
