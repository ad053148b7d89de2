package radiolink

import (
	"io"
	"sync"
)

// Stub plays the radio co-processor in host builds and tests. It acknowledges
// every tx frame with a status frame, answers pings, and records what it was
// asked to broadcast.
type Stub struct {
	mu     sync.Mutex
	w      *framedWriter
	txLog  ringBuffer
	reject byte
}

func NewStub() *Stub { return &Stub{} }

// Serve handles frames on rwc until it fails or a close frame arrives.
func (s *Stub) Serve(rwc io.ReadWriteCloser) error {
	defer rwc.Close()
	rd := newFramedReader(rwc)

	s.mu.Lock()
	s.w = newFramedWriter(rwc)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.w = nil
		s.mu.Unlock()
	}()

	for {
		f, err := rd.ReadFrame()
		if err != nil {
			return err
		}
		switch f.Type {
		case framePing:
			err = s.write(Frame{Type: framePong})
		case frameTx:
			s.mu.Lock()
			s.txLog.push(append([]byte(nil), f.Payload...))
			code := s.reject
			s.mu.Unlock()
			err = s.write(Frame{Type: frameStatus, Payload: []byte{code}})
		case frameClose:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Stub) write(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return io.ErrClosedPipe
	}
	return s.w.WriteFrame(f)
}

// InjectRx delivers data as if it had been heard on air.
func (s *Stub) InjectRx(data []byte) error {
	return s.write(Frame{Type: frameRx, Payload: append([]byte(nil), data...)})
}

// SetReject makes subsequent tx frames fail with code (0 restores success).
func (s *Stub) SetReject(code byte) {
	s.mu.Lock()
	s.reject = code
	s.mu.Unlock()
}

// TxLog returns the most recent broadcasts, oldest first.
func (s *Stub) TxLog() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txLog.snapshot()
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

// push overwrites the oldest entry when full.
func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, rb.count)
	for c, i := 0, rb.head; c < rb.count; c, i = c+1, (i+1)%ringCapacity {
		out[c] = append([]byte(nil), rb.data[i]...)
	}
	return out
}
