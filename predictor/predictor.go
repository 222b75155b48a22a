/*
DESCRIPTION
  predictor.go implements the Predictor tagged union and its Apply
  function, which reconstructs an absolute field value from a decoded
  raw delta plus cross-frame and in-frame history.

AUTHORS
  Grounded on original_source/blackbox-log/src/parser/predictor.rs
  (predictor.rs from the blackbox-log crate this module is derived from).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package predictor implements the blackbox predictor pipeline: each
// predictor computes an expected ("diff") value from header parameters
// and frame history, which is then added to the raw decoded delta to
// reconstruct the field's absolute value.
package predictor

import (
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
)

// Predictor identifies which prediction rule a field definition declares.
// The numeric values match the header grammar's digit codes exactly.
type Predictor uint8

const (
	Zero Predictor = iota
	Previous
	StraightLine
	Average2
	MinThrottle
	Motor0
	Increment
	HomeLat
	FifteenHundred
	VBatReference
	LastMainFrameTime
	MinMotor
)

// ErrCorrupted is returned when a predictor cannot be evaluated, e.g.
// Motor0 referencing a field not yet decoded in the current frame.
var ErrCorrupted = errors.New("corrupted predictor reference")

// FromNumString parses a header-declared predictor code point, as found
// in a "Field <K> predictor" header line.
func FromNumString(s string) (Predictor, bool) {
	switch s {
	case "0":
		return Zero, true
	case "1":
		return Previous, true
	case "2":
		return StraightLine, true
	case "3":
		return Average2, true
	case "4":
		return MinThrottle, true
	case "5":
		return Motor0, true
	case "6":
		return Increment, true
	case "7":
		return HomeLat, true
	case "8":
		return FifteenHundred, true
	case "9":
		return VBatReference, true
	case "10":
		return LastMainFrameTime, true
	case "11":
		return MinMotor, true
	default:
		return 0, false
	}
}

// FrameKind identifies which per-kind field-definition table a predictor
// is being evaluated against. Defined here, rather than in headers or
// frame, so that neither package importing the other is required to
// resolve a Motor0 reference.
type FrameKind uint8

const (
	Intra FrameKind = iota
	Inter
	Slow
	GPS
	GPSHome
)

// Headers is the minimal view of parsed header state a predictor needs.
// It is implemented by headers.Headers; kept as an interface here so this
// package never imports headers (which imports predictor), and so the
// predictor variants stay flat value types rather than capturing header
// state (see the design notes in SPEC_FULL.md).
type Headers interface {
	MinThrottle() uint32
	VBatReference() uint32
	MinMotor() uint32
	Motor0Value(kind FrameKind, current []uint32) (uint32, bool)
}

// Apply computes the absolute value of a field from its raw decoded
// value, given whether the field is signed, the frame decoded so far
// (for in-frame references such as Motor0), the last one or two main
// frames' values for this field position, and the number of inter
// frames skipped since the last emitted frame.
func Apply(
	p Predictor,
	h Headers,
	log logging.Logger,
	kind FrameKind,
	value uint32,
	signed bool,
	current []uint32,
	last, lastLast *uint32,
	skippedFrames uint32,
) (uint32, error) {
	diff, err := diff(p, h, log, kind, signed, current, last, lastLast, skippedFrames)
	if err != nil {
		return 0, err
	}

	if signed {
		return uint32(int32(value) + int32(diff)), nil
	}
	return value + diff, nil
}

func diff(
	p Predictor,
	h Headers,
	log logging.Logger,
	kind FrameKind,
	signed bool,
	current []uint32,
	last, lastLast *uint32,
	skippedFrames uint32,
) (uint32, error) {
	switch p {
	case Zero:
		return 0, nil

	case Previous:
		return derefOr0(last), nil

	case StraightLine:
		if signed {
			return uint32(straightLine(derefSignedOpt(last), derefSignedOpt(lastLast))), nil
		}
		return straightLine(last, lastLast), nil

	case Average2:
		if signed {
			return uint32(average(derefSignedOpt(last), derefSignedOpt(lastLast))), nil
		}
		return average(last, lastLast), nil

	case MinThrottle:
		return h.MinThrottle(), nil

	case Motor0:
		v, ok := h.Motor0Value(kind, current)
		if !ok {
			return 0, errors.Wrap(ErrCorrupted, "motor[0] field not yet decoded in this frame")
		}
		return v, nil

	case Increment:
		if signed {
			return uint32(1 + int32(skippedFrames) + int32(derefOr0(last))), nil
		}
		skipped := int32(skippedFrames)
		return uint32(1 + skipped + int32(derefOr0(last))), nil

	case FifteenHundred:
		return 1500, nil

	case VBatReference:
		return h.VBatReference(), nil

	case MinMotor:
		return h.MinMotor(), nil

	case HomeLat, LastMainFrameTime:
		if log != nil {
			log.Warning("found unimplemented predictor", "predictor", predictorName(p))
		}
		return 0, nil

	default:
		return 0, errors.Wrapf(ErrCorrupted, "unknown predictor %d", p)
	}
}

func predictorName(p Predictor) string {
	switch p {
	case HomeLat:
		return "HomeLat"
	case LastMainFrameTime:
		return "LastMainFrameTime"
	default:
		return "unknown"
	}
}

func derefOr0(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}

func derefSignedOpt(v *uint32) *int32 {
	if v == nil {
		return nil
	}
	s := int32(*v)
	return &s
}

