/*
DESCRIPTION
  reader.go provides a byte/bit cursor reader over an immutable in-memory
  buffer, used by the codec package to decode the blackbox wire encodings.

AUTHORS
  Adapted from the bit reader design in
  github.com/ausocean/av/codec/h264/h264dec/bits.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package reader provides a zero-copy byte/bit cursor over a blackbox log's
// data section. Unlike an io.Reader-backed bit reader, it never blocks and
// never needs buffering: the whole log is resident in memory for the
// lifetime of the decode (see the concurrency and resource model in the
// blackbox package's documentation).
package reader

import "io"

// Reader is a cursor over an immutable byte slice. Byte-aligned reads
// (ReadByte, ReadBytes) and bit-level reads (ReadBit, ReadBits) share the
// same underlying cursor; a partial byte consumed by a bit read is held in
// an internal accumulator until either more bits are read from it or
// Align is called to discard the remainder and resume at the next byte
// boundary.
type Reader struct {
	data []byte
	pos  int // index of the next unread byte in data

	// bit-level state: acc holds bits not yet consumed from the byte at
	// data[pos-1]; nbits is how many of its low bits remain valid.
	acc   byte
	nbits int
}

// New returns a Reader over data. The reader does not copy data.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes, not including any partially
// consumed bit-accumulator byte.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// Tell returns the current byte offset. It is only meaningful when the
// reader is byte-aligned (see Aligned).
func (r *Reader) Tell() int {
	return r.pos
}

// Aligned reports whether the reader currently sits on a byte boundary,
// i.e. no bits from a partially consumed byte remain in the accumulator.
func (r *Reader) Aligned() bool {
	return r.nbits == 0
}

// Align discards any unconsumed bits left in the current byte, advancing
// to the next byte boundary. The bit-level reads never call it, so
// consecutive Elias-coded values share a byte; the byte-aligned reads
// (PeekByte, ReadByte, ReadBytes) call it themselves before reading.
func (r *Reader) Align() {
	r.nbits = 0
	r.acc = 0
}

// PeekByte returns the next byte without advancing the cursor. Any bits
// left over from a preceding bit-level read are discarded first, per
// §4.1's flush rule: a byte-aligned read always realigns to data[pos],
// never serving stale bits out of the bit accumulator.
func (r *Reader) PeekByte() (byte, error) {
	r.Align()
	if r.pos >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	return r.data[r.pos], nil
}

// ReadByte reads and consumes one byte, realigning first (see PeekByte).
func (r *Reader) ReadByte() (byte, error) {
	r.Align()
	if r.pos >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads and consumes n bytes, realigning first (see PeekByte).
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	r.Align()
	if n < 0 || r.pos+n > len(r.data) {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBit reads a single bit, MSB-first within each byte.
func (r *Reader) ReadBit() (uint32, error) {
	if r.nbits == 0 {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		r.acc = r.data[r.pos]
		r.pos++
		r.nbits = 8
	}
	r.nbits--
	bit := (r.acc >> uint(r.nbits)) & 1
	return uint32(bit), nil
}

// ReadBits reads n bits (0 <= n <= 32), MSB-first, and returns them
// right-justified in the result.
func (r *Reader) ReadBits(n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v = (v << 1) | bit
	}
	return v, nil
}
