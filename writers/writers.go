package writers

// Little-endian writers mirroring the readers package.
//
// Writer is append-only.  Anything that lives at a computed offset is patched afterwards into the
// finished buffer with PutU16/PutU32.

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrValueTooLarge = errors.New("value too large for its length prefix")
	ErrOutOfBounds   = errors.New("write out of bounds")
)

type Writer struct {
	out     io.Writer
	written int
	scratch [4]byte
}

func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Written is the number of bytes emitted so far.
func (w *Writer) Written() int {
	return w.written
}

func (w *Writer) WriteBytes(b []byte) error {
	n, err := w.out.Write(b)
	w.written += n
	return err
}

func (w *Writer) WriteU16(v uint16) error {
	binary.LittleEndian.PutUint16(w.scratch[:2], v)
	return w.WriteBytes(w.scratch[:2])
}

func (w *Writer) WriteU32(v uint32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	return w.WriteBytes(w.scratch[:4])
}

// WriteString writes a uint16 byte-length prefix and the UTF-8 bytes of s.
// Nothing is written if s does not fit the prefix.
func (w *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return errors.Wrapf(ErrValueTooLarge, "string of %v bytes", len(s))
	}
	if err := w.WriteU16(uint16(len(s))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

func check(buf []byte, offset int, size int) error {
	if offset < 0 || offset+size > len(buf) {
		return errors.Wrapf(ErrOutOfBounds, "%v bytes at %#x (length %#x)", size, offset, len(buf))
	}
	return nil
}

func PutU16(buf []byte, offset int, v uint16) error {
	if err := check(buf, offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(buf[offset:], v)
	return nil
}

func PutU32(buf []byte, offset int, v uint32) error {
	if err := check(buf, offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(buf[offset:], v)
	return nil
}
