package readers

// Cursor-based little-endian reader for userdata files.
//
// Every read has two flavours: the plain one reads at the cursor and advances it, the Peek one
// reads at an absolute offset and leaves the cursor alone.  The profile codec is almost entirely
// Peeks, since most of a user file is a fixed-offset table.

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	ErrOutOfBounds     = errors.New("read out of bounds")
	ErrInvalidEncoding = errors.New("string is not valid UTF-8")
)

type Reader struct {
	data []byte
	cur  int
}

// New wraps data.  The reader never modifies it, so any number of readers may share one buffer.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Cursor() int {
	return r.cur
}

func (r *Reader) Len() int {
	return len(r.data)
}

// Seek moves the cursor to an absolute offset.  Seeking to the very end is allowed.
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return errors.Wrapf(ErrOutOfBounds, "seek to %#x (length %#x)", offset, len(r.data))
	}
	r.cur = offset
	return nil
}

// Require checks that size bytes are available at offset.
// Sizes are int64 so that file-supplied counts multiplied by a record size cannot overflow.
func (r *Reader) Require(offset int, size int64) error {
	if offset < 0 || size < 0 || int64(offset)+size > int64(len(r.data)) {
		return errors.Wrapf(ErrOutOfBounds, "need %#x bytes at %#x (length %#x)", size, offset, len(r.data))
	}
	return nil
}

func (r *Reader) slice(offset int, size int) ([]byte, error) {
	if err := r.Require(offset, int64(size)); err != nil {
		return nil, err
	}
	return r.data[offset : offset+size], nil
}

func (r *Reader) PeekU16(offset int) (uint16, error) {
	b, err := r.slice(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) PeekU32(offset int) (uint32, error) {
	b, err := r.slice(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// PeekString reads a uint16 length prefix followed by that many bytes of UTF-8.
// It also returns the total number of bytes consumed, prefix included.
func (r *Reader) PeekString(offset int) (string, int, error) {
	length, err := r.PeekU16(offset)
	if err != nil {
		return "", 0, err
	}
	b, err := r.slice(offset+2, int(length))
	if err != nil {
		return "", 0, errors.Wrapf(err, "string body of length %v", length)
	}
	if !utf8.Valid(b) {
		return "", 0, errors.Wrapf(ErrInvalidEncoding, "string at %#x", offset)
	}
	return string(b), 2 + int(length), nil
}

// PeekBytes returns a copy of size bytes at offset.
func (r *Reader) PeekBytes(offset int, size int) ([]byte, error) {
	b, err := r.slice(offset, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadU16() (uint16, error) {
	v, err := r.PeekU16(r.cur)
	if err != nil {
		return 0, err
	}
	r.cur += 2
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	v, err := r.PeekU32(r.cur)
	if err != nil {
		return 0, err
	}
	r.cur += 4
	return v, nil
}

func (r *Reader) ReadString() (string, error) {
	s, n, err := r.PeekString(r.cur)
	if err != nil {
		return "", err
	}
	r.cur += n
	return s, nil
}

func (r *Reader) ReadBytes(size int) ([]byte, error) {
	b, err := r.PeekBytes(r.cur, size)
	if err != nil {
		return nil, err
	}
	r.cur += size
	return b, nil
}
