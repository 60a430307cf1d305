package readers

import (
	"testing"

	"github.com/pkg/errors"
)

func TestReadSequence(t *testing.T) {
	data := []byte{
		0x0E, 0x00, 0x00, 0x00, // u32 14
		0x34, 0x12, // u16 0x1234
		0x03, 0x00, 'B', 'o', 'b', // string "Bob"
		0xFF, 0xFF, 0xFF, 0xFF,
	}
	r := New(data)

	v32, err := r.ReadU32()
	if err != nil || v32 != 0x0E {
		t.Fatalf("ReadU32: got %v, %v", v32, err)
	}
	v16, err := r.ReadU16()
	if err != nil || v16 != 0x1234 {
		t.Fatalf("ReadU16: got %#x, %v", v16, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "Bob" {
		t.Fatalf("ReadString: got %q, %v", s, err)
	}
	if r.Cursor() != 11 {
		t.Errorf("cursor should be 11, is %v", r.Cursor())
	}
	v32, err = r.ReadU32()
	if err != nil || v32 != 0xFFFFFFFF {
		t.Fatalf("ReadU32 at end: got %#x, %v", v32, err)
	}
	if _, err := r.ReadU16(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds at end of buffer, got %v", err)
	}
}

func TestPeekLeavesCursor(t *testing.T) {
	r := New([]byte{1, 0, 0, 0, 2, 0, 0, 0})
	if _, err := r.ReadU16(); err != nil {
		t.Fatal(err)
	}
	v, err := r.PeekU32(4)
	if err != nil || v != 2 {
		t.Fatalf("PeekU32: got %v, %v", v, err)
	}
	if r.Cursor() != 2 {
		t.Errorf("peek moved the cursor to %v", r.Cursor())
	}
}

func TestOutOfBounds(t *testing.T) {
	r := New([]byte{1, 2, 3})
	cases := map[string]func() error{
		"u32":        func() error { _, err := r.ReadU32(); return err },
		"peek u16":   func() error { _, err := r.PeekU16(2); return err },
		"negative":   func() error { _, err := r.PeekU16(-1); return err },
		"seek":       func() error { return r.Seek(4) },
		"require":    func() error { return r.Require(0, 1<<40) },
		"bytes":      func() error { _, err := r.PeekBytes(1, 3); return err },
		"short body": func() error { _, err := New([]byte{5, 0, 'a'}).ReadString(); return err },
	}
	for name, f := range cases {
		if err := f(); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("%v: expected ErrOutOfBounds, got %v", name, err)
		}
	}
}

func TestInvalidEncoding(t *testing.T) {
	r := New([]byte{2, 0, 0xC3, 0x28})
	_, err := r.ReadString()
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	if r.Cursor() != 0 {
		t.Errorf("failed read advanced the cursor to %v", r.Cursor())
	}
}
