package reader

import (
	"io"
	"testing"
)

func TestReadByte(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03})
	for _, want := range []byte{0x01, 0x02, 0x03} {
		got, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Fatalf("ReadByte = %#x, want %#x", got, want)
		}
	}
	if _, err := r.ReadByte(); err != io.ErrUnexpectedEOF {
		t.Fatalf("ReadByte past end: err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadBits(t *testing.T) {
	// 0x8f, 0xe3 = 1000 1111, 1110 0011
	r := New([]byte{0x8f, 0xe3})

	cases := []struct {
		n    int
		want uint32
	}{
		{4, 0x8},
		{2, 0x3},
		{4, 0xf},
		{6, 0x23},
	}
	for _, c := range cases {
		got, err := r.ReadBits(c.n)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", c.n, err)
		}
		if got != c.want {
			t.Fatalf("ReadBits(%d) = %#x, want %#x", c.n, got, c.want)
		}
	}
}

func TestReadBitThenExplicitAlign(t *testing.T) {
	r := New([]byte{0b10110000, 0xff})
	bit, err := r.ReadBit()
	if err != nil || bit != 1 {
		t.Fatalf("ReadBit = %d, %v", bit, err)
	}
	if r.Aligned() {
		t.Fatal("expected reader to be unaligned after a single bit read")
	}
	r.Align()
	if !r.Aligned() {
		t.Fatal("expected reader to be aligned after Align")
	}
	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b != 0xff {
		t.Fatalf("ReadByte = %#x, want 0xff", b)
	}
}

func TestReadByteAutoAligns(t *testing.T) {
	// A byte-aligned read must realign on its own: it must not serve
	// stale bits left over from a preceding, non-byte-terminated bit
	// read (the bug a missing Align() at a frame boundary would hit).
	r := New([]byte{0b10110000, 0xff})
	if _, err := r.ReadBit(); err != nil {
		t.Fatalf("ReadBit: %v", err)
	}
	if r.Aligned() {
		t.Fatal("expected reader to be unaligned after a single bit read")
	}
	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b != 0xff {
		t.Fatalf("ReadByte = %#x, want 0xff (must skip the rest of the bit-read byte)", b)
	}
	if !r.Aligned() {
		t.Fatal("expected reader to be aligned after ReadByte")
	}
}

func TestLenAndTell(t *testing.T) {
	r := New([]byte{1, 2, 3, 4})
	if r.Len() != 4 {
		t.Fatalf("Len = %d, want 4", r.Len())
	}
	r.ReadByte()
	if r.Tell() != 1 {
		t.Fatalf("Tell = %d, want 1", r.Tell())
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
}

func TestReadBitsEOF(t *testing.T) {
	r := New([]byte{0xff})
	if _, err := r.ReadBits(9); err != io.ErrUnexpectedEOF {
		t.Fatalf("ReadBits past end: err = %v, want io.ErrUnexpectedEOF", err)
	}
}
