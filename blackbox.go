/*
DESCRIPTION
  blackbox.go defines the package-level error taxonomy and the Config
  type threaded through header parsing and frame decoding.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package blackbox decodes Betaflight, EmuFlight, and INAV flight-
// controller Blackbox logs into structured flight data. A single byte
// buffer may hold several concatenated logs, self-delimited by a
// product-banner header line; File splits the buffer and Log decodes
// one log's header block and binary frame stream into main, slow, and
// GPS frames plus discrete events.
//
// Decoding is pure and single-threaded: a File keeps the byte slice it
// was built from without copying it, a Log owns its decoded values, and
// nothing in this package mutates global state. Driving several logs concurrently is safe as
// long as each is parsed from its own byte range.
package blackbox

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"

	"github.com/nsherlock/blackbox/codec"
	"github.com/nsherlock/blackbox/frame"
	"github.com/nsherlock/blackbox/headers"
	"github.com/nsherlock/blackbox/predictor"
)

// ErrorKind classifies a ParseError into the taxonomy of §7: every kind
// is terminal for the log being decoded, and never affects any other
// log drawn from the same File.
type ErrorKind int

const (
	// ErrUnsupportedVersionKind: the header block named a data_version
	// this decoder does not recognize.
	ErrUnsupportedVersionKind ErrorKind = iota
	// ErrUnknownFirmwareKind: the header block named a firmware
	// revision outside {Betaflight, EmuFlight, INAV}.
	ErrUnknownFirmwareKind
	// ErrCorruptedKind: the header block or binary frame stream
	// violated the wire grammar in a way the decoder cannot recover
	// from.
	ErrCorruptedKind
	// ErrUnexpectedEOFKind: the reader ran out of input mid-encoding
	// or mid-frame.
	ErrUnexpectedEOFKind
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedVersionKind:
		return "UnsupportedVersion"
	case ErrUnknownFirmwareKind:
		return "UnknownFirmware"
	case ErrCorruptedKind:
		return "Corrupted"
	case ErrUnexpectedEOFKind:
		return "UnexpectedEof"
	default:
		return "Unknown"
	}
}

// ParseError wraps any error surfaced while parsing one log's headers or
// decoding its frame stream, classified into the taxonomy above. A
// ParseError is always terminal for the Log being produced; frames
// successfully decoded before the failure remain in the partial Log
// returned alongside it.
type ParseError struct {
	Kind ErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// classify wraps a raw decode error into a ParseError with the right
// Kind, by matching it against the sentinel errors each sub-package
// exposes. A nil err classifies to nil.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, headers.ErrUnsupportedVersion):
		return &ParseError{Kind: ErrUnsupportedVersionKind, Err: err}
	case errors.Is(err, headers.ErrUnknownFirmware):
		return &ParseError{Kind: ErrUnknownFirmwareKind, Err: err}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &ParseError{Kind: ErrUnexpectedEOFKind, Err: err}
	case errors.Is(err, headers.ErrCorrupted),
		errors.Is(err, frame.ErrCorrupted),
		errors.Is(err, predictor.ErrCorrupted),
		errors.Is(err, codec.ErrCorrupted):
		return &ParseError{Kind: ErrCorruptedKind, Err: err}
	default:
		return &ParseError{Kind: ErrCorruptedKind, Err: err}
	}
}

// Config controls how a File decodes its logs.
type Config struct {
	// Raw, when true, skips the predictor step: emitted frame values are
	// the raw decoded integers straight off the wire (§6, §8 property 4).
	Raw bool

	// Logger receives best-effort diagnostics that never alter the error
	// kind returned to the caller (§7). A nil Logger discards them.
	Logger logging.Logger
}

func (c Config) logger() logging.Logger {
	return c.Logger
}

// errCorruptedf builds a corrupted-input error for conditions detected
// at the blackbox package level (outside any sub-package's own sentinel),
// such as an out-of-range log index.
func errCorruptedf(format string, args ...interface{}) error {
	return errors.Wrapf(headers.ErrCorrupted, format, args...)
}
