/*
DESCRIPTION
  event.go decodes "E" event records: a one-byte event code selecting a
  fixed payload shape, terminating the frame loop successfully on
  LogEnd.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package frame

import (
	"bytes"
	"math"

	"github.com/pkg/errors"

	"github.com/nsherlock/blackbox/codec"
	"github.com/nsherlock/blackbox/internal/reader"
)

// Event codes, as declared by the firmware's own blackbox field
// definitions (flight_log_event_t). Not header-declared: fixed by the
// wire format itself.
const (
	EventSyncBeep           byte = 0
	EventInflightAdjustment byte = 13
	EventLoggingResume      byte = 14
	EventDisarm             byte = 15
	EventFlightMode         byte = 30
	EventLogEnd             byte = 255
)

// logEndMarker is the literal payload that follows an EventLogEnd code.
var logEndMarker = []byte("End of log\x00")

// EventPayload is implemented by every concrete event payload type.
type EventPayload interface {
	isEventPayload()
}

type SyncBeep struct{ Time uint32 }

type Disarm struct{ Reason uint32 }

type FlightMode struct {
	Flags     uint32
	LastFlags uint32
}

type InflightAdjustment struct {
	Function byte
	Value    int32
	Float    float32
	IsFloat  bool
}

type LoggingResume struct {
	Iteration   uint32
	CurrentTime uint32
}

type LogEnd struct{}

func (SyncBeep) isEventPayload()           {}
func (Disarm) isEventPayload()             {}
func (FlightMode) isEventPayload()         {}
func (InflightAdjustment) isEventPayload() {}
func (LoggingResume) isEventPayload()      {}
func (LogEnd) isEventPayload()             {}

// Event is one decoded "E" record.
type Event struct {
	Code    byte
	Payload EventPayload
}

func readVariable(r *reader.Reader) (uint32, error) {
	var sink []uint32
	if err := codec.Variable.DecodeInto(r, 0, &sink); err != nil {
		return 0, err
	}
	return sink[0], nil
}

func readVariableSigned(r *reader.Reader) (int32, error) {
	var sink []uint32
	if err := codec.VariableSigned.DecodeInto(r, 0, &sink); err != nil {
		return 0, err
	}
	return int32(sink[0]), nil
}

// DecodeEvent decodes one event record; the caller has already consumed
// the leading 'E' kind byte.
func DecodeEvent(r *reader.Reader) (Event, error) {
	code, err := r.ReadByte()
	if err != nil {
		return Event{}, err
	}

	switch code {
	case EventSyncBeep:
		v, err := readVariable(r)
		if err != nil {
			return Event{}, err
		}
		return Event{Code: code, Payload: SyncBeep{Time: v}}, nil

	case EventDisarm:
		v, err := readVariable(r)
		if err != nil {
			return Event{}, err
		}
		return Event{Code: code, Payload: Disarm{Reason: v}}, nil

	case EventFlightMode:
		flags, err := readVariable(r)
		if err != nil {
			return Event{}, err
		}
		last, err := readVariable(r)
		if err != nil {
			return Event{}, err
		}
		return Event{Code: code, Payload: FlightMode{Flags: flags, LastFlags: last}}, nil

	case EventInflightAdjustment:
		fn, err := r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		if fn&0x80 != 0 {
			raw, err := r.ReadBytes(4)
			if err != nil {
				return Event{}, err
			}
			bits := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
			return Event{Code: code, Payload: InflightAdjustment{
				Function: fn &^ 0x80,
				Float:    math.Float32frombits(bits),
				IsFloat:  true,
			}}, nil
		}
		v, err := readVariableSigned(r)
		if err != nil {
			return Event{}, err
		}
		return Event{Code: code, Payload: InflightAdjustment{Function: fn, Value: v}}, nil

	case EventLoggingResume:
		iteration, err := readVariable(r)
		if err != nil {
			return Event{}, err
		}
		current, err := readVariable(r)
		if err != nil {
			return Event{}, err
		}
		return Event{Code: code, Payload: LoggingResume{Iteration: iteration, CurrentTime: current}}, nil

	case EventLogEnd:
		got, err := r.ReadBytes(len(logEndMarker))
		if err != nil {
			return Event{}, err
		}
		if !bytes.Equal(got, logEndMarker) {
			return Event{}, errors.Wrap(ErrCorrupted, "malformed LogEnd marker")
		}
		return Event{Code: code, Payload: LogEnd{}}, nil

	default:
		return Event{}, errors.Wrapf(ErrCorrupted, "unknown event code %d", code)
	}
}
