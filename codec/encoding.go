/*
DESCRIPTION
  encoding.go defines the Encoding tagged union used by blackbox field
  definitions, and dispatches each encoding to its decoder.

AUTHORS
  Grounded on the Encoding enum and decode dispatch in
  github.com/ausocean/av/codec/h264/h264dec (bitstream decode shape) and
  original_source/src/encoding/mod.rs + src/parser/decode/mod.rs (exact
  code points and semantics) from the blackbox-log crate this module
  is derived from.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package codec implements the self-terminating variable-width integer
// encodings used on the wire in a blackbox log's data section. Each
// encoding reads one or more values from a reader.Reader and appends them
// to a caller-supplied sink, consuming exactly the bits or bytes it
// advertises; Null consumes no input and appends a single zero.
package codec

import (
	"github.com/pkg/errors"

	"github.com/nsherlock/blackbox/internal/reader"
)

// Encoding identifies one of the wire encodings a field definition may
// declare. The numeric values match the blackbox header grammar exactly.
type Encoding uint8

const (
	VariableSigned   Encoding = 0
	Variable         Encoding = 1
	Negative14Bit    Encoding = 3
	EliasDelta       Encoding = 4
	EliasDeltaSigned Encoding = 5
	TaggedVariable   Encoding = 6
	Tagged32         Encoding = 7
	Tagged16         Encoding = 8
	Null             Encoding = 9
	EliasGamma       Encoding = 10
	EliasGammaSigned Encoding = 11
)

// ErrCorrupted is returned when an encoding's bit pattern cannot be a
// valid representation of any value (e.g. more than 5 continuation bytes
// in a Variable encoding).
var ErrCorrupted = errors.New("corrupted encoding")

// FromNumString parses a header-declared encoding code point, as found in
// a "Field <K> encoding" header line.
func FromNumString(s string) (Encoding, bool) {
	switch s {
	case "0":
		return VariableSigned, true
	case "1":
		return Variable, true
	case "3":
		return Negative14Bit, true
	case "4":
		return EliasDelta, true
	case "5":
		return EliasDeltaSigned, true
	case "6":
		return TaggedVariable, true
	case "7":
		return Tagged32, true
	case "8":
		return Tagged16, true
	case "9":
		return Null, true
	case "10":
		return EliasGamma, true
	case "11":
		return EliasGammaSigned, true
	default:
		return 0, false
	}
}

// MaxChunkSize is the maximum number of adjacent, identically-encoded
// fields that a single invocation of this encoding's decoder may consume
// in a batch. It is 1 for everything except the tagged family, which can
// emit several values from one shared tag byte.
func (e Encoding) MaxChunkSize() int {
	switch e {
	case Tagged16:
		return 4
	case Tagged32:
		return 3
	case TaggedVariable:
		return 8
	default:
		return 1
	}
}

// DecodeInto decodes this encoding's next batch from r, appending the
// resulting values to *sink. extra is the number of additional
// same-encoding fields beyond the first to batch into this call; it must
// be 0 for every encoding outside the tagged family.
func (e Encoding) DecodeInto(r *reader.Reader, extra int, sink *[]uint32) error {
	switch e {
	case VariableSigned:
		v, err := variable(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, zigZagDecode(v))
		return nil
	case Variable:
		v, err := variable(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, v)
		return nil
	case Negative14Bit:
		v, err := negative14Bit(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, v)
		return nil
	case EliasGamma:
		v, err := eliasGamma(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, v)
		return nil
	case EliasGammaSigned:
		v, err := eliasGamma(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, zigZagDecode(v))
		return nil
	case EliasDelta:
		v, err := eliasDelta(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, v)
		return nil
	case EliasDeltaSigned:
		v, err := eliasDelta(r)
		if err != nil {
			return err
		}
		*sink = append(*sink, zigZagDecode(v))
		return nil
	case Tagged16:
		return tagged16(r, sink)
	case Tagged32:
		return tagged32(r, sink)
	case TaggedVariable:
		return taggedVariable(r, extra+1, sink)
	case Null:
		*sink = append(*sink, 0)
		return nil
	default:
		return errors.Wrapf(ErrCorrupted, "unknown encoding %d", e)
	}
}

// signExtend sign-extends the low bits bits of from, treating bit
// (bits-1) as the sign bit.
func signExtend(from uint32, bits uint32) int32 {
	unused := 32 - bits
	return int32(from<<unused) >> unused
}

// zigZagDecode maps an unsigned zig-zag code back to its signed value,
// reinterpreted as u32 the way every signed encoding in this package
// does: 0->0, 1->-1, 2->1, 3->-2, MaxUint32->MinInt32.
func zigZagDecode(v uint32) uint32 {
	signed := int32(v>>1) ^ -int32(v&1)
	return uint32(signed)
}
