package radiolink

import (
	"fmt"
	"io"
)

// Frame types exchanged with the radio co-processor.
const (
	framePing   byte = 0x01
	framePong   byte = 0x02
	frameTx     byte = 0x20 // -> broadcast payload
	frameStatus byte = 0x21 // <- one result byte per tx, 0 = ok
	frameRx     byte = 0x22 // <- payload heard on air
	frameClose  byte = 0x7f
)

const maxPayload = 0xFFFF

// Frame is type(1) | len(2, big endian) | payload.
type Frame struct {
	Type    byte
	Payload []byte
}

type framedReader struct{ r io.Reader }
type framedWriter struct{ w io.Writer }

func newFramedReader(r io.Reader) *framedReader { return &framedReader{r: r} }
func newFramedWriter(w io.Writer) *framedWriter { return &framedWriter{w: w} }

func (fr *framedReader) ReadFrame() (Frame, error) {
	var hdr [3]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		return Frame{}, err
	}
	n := int(hdr[1])<<8 | int(hdr[2])
	var buf []byte
	if n > 0 {
		buf = make([]byte, n)
		if _, err := io.ReadFull(fr.r, buf); err != nil {
			return Frame{}, err
		}
	}
	return Frame{Type: hdr[0], Payload: buf}, nil
}

// WriteFrame emits header and payload in a single Write so a concurrent
// reader on the far side never sees a split header.
func (fw *framedWriter) WriteFrame(f Frame) error {
	if len(f.Payload) > maxPayload {
		return fmt.Errorf("frame too large: %d", len(f.Payload))
	}
	buf := make([]byte, 3+len(f.Payload))
	buf[0] = f.Type
	buf[1] = byte(len(f.Payload) >> 8)
	buf[2] = byte(len(f.Payload))
	copy(buf[3:], f.Payload)
	_, err := fw.w.Write(buf)
	return err
}
