/*
DESCRIPTION
  value.go implements the Unit/Value typed projection supplementing the
  raw decoded integers, grounded on blackbox-log's parser::Value enum
  (FrameTime, Amperage, Voltage, Acceleration, Rotation, Unsigned,
  Signed, Boolean, FlightMode, State, FailsafePhase).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package units

import "github.com/nsherlock/blackbox/headers"

// Unit tags which physical quantity, if any, a field's raw value
// represents. A caller building a typed projection of a frame picks the
// matching FooFromRaw conversion (or flag-set constructor) based on a
// field's Unit.
type Unit int

const (
	UnitUnsigned Unit = iota
	UnitSigned
	UnitBoolean
	UnitFrameTime
	UnitAmperage
	UnitVoltage
	UnitAcceleration
	UnitRotation
	UnitVelocity
	UnitLength
	UnitFlightMode
	UnitState
	UnitFailsafePhase
)

// UnitForField classifies a field by its declared name, using the
// naming convention Betaflight/EmuFlight/INAV firmware actually emit.
// Fields this heuristic does not recognize default to UnitSigned or
// UnitUnsigned per the signed flag, i.e. the raw integer itself.
func UnitForField(name string, signed bool) Unit {
	switch name {
	case "time":
		return UnitFrameTime
	case "amperage", "energyCumulative":
		return UnitAmperage
	case "vbat", "vbatLatest":
		return UnitVoltage
	case "accSmooth[0]", "accSmooth[1]", "accSmooth[2]":
		return UnitAcceleration
	case "gyroADC[0]", "gyroADC[1]", "gyroADC[2]":
		return UnitRotation
	case "GPS_speed":
		return UnitVelocity
	case "GPS_altitude", "GPS_home_altitude", "baroAlt":
		return UnitLength
	case "flightModeFlags":
		return UnitFlightMode
	case "stateFlags":
		return UnitState
	case "failsafePhase":
		return UnitFailsafePhase
	}
	if signed {
		return UnitSigned
	}
	return UnitUnsigned
}

// Value is a raw field value re-projected through its Unit. Exactly one
// of the typed accessors below is meaningful for a given Kind; callers
// should switch on Kind before reading one.
type Value struct {
	Kind Unit
	raw  uint32

	firmware headers.FirmwareKind
	accRef   uint32
	gyroRef  float64
}

// NewValue builds a Value for a field, given its Unit and the raw
// decoded integer, plus the header parameters (acceleration_1g,
// gyro_scale, firmware) needed by the Acceleration/Rotation/flag-set
// conversions. Parameters irrelevant to kind are ignored.
func NewValue(kind Unit, raw uint32, firmware headers.FirmwareKind, accRef uint32, gyroRef float64) Value {
	return Value{Kind: kind, raw: raw, firmware: firmware, accRef: accRef, gyroRef: gyroRef}
}

// Unsigned returns the value reinterpreted as an unsigned integer.
func (v Value) Unsigned() uint32 { return v.raw }

// Signed returns the value reinterpreted as a signed integer.
func (v Value) Signed() int32 { return int32(v.raw) }

// Boolean returns the value's truthiness (nonzero is true).
func (v Value) Boolean() bool { return v.raw != 0 }

// Time returns the value as a frame-time quantity.
func (v Value) Time() Time { return TimeFromRaw(v.raw) }

// Amperage returns the value as a current quantity.
func (v Value) Amperage() Current { return CurrentFromRaw(int32(v.raw)) }

// Voltage returns the value as a voltage quantity.
func (v Value) Voltage() Voltage { return VoltageFromRaw(v.raw) }

// Acceleration returns the value as an acceleration quantity.
func (v Value) Acceleration() Acceleration {
	return AccelerationFromRaw(int32(v.raw), v.accRef)
}

// Rotation returns the value as an angular-velocity quantity.
func (v Value) Rotation() AngularVelocity {
	return AngularVelocityFromRaw(int32(v.raw), v.gyroRef)
}

// Velocity returns the value as a velocity quantity.
func (v Value) Velocity() Velocity { return VelocityFromRaw(v.raw) }

// Length returns the value as a length quantity.
func (v Value) Length() Length { return LengthFromRaw(int32(v.raw)) }

// FlightMode returns the value as a flight-mode bitmap set.
func (v Value) FlightMode() FlightModeSet { return NewFlightModeSet(v.raw, v.firmware) }

// State returns the value as a flight-controller-state bitmap set.
func (v Value) State() StateSet { return NewStateSet(v.raw, v.firmware) }

// Failsafe returns the value as a failsafe-phase enum.
func (v Value) Failsafe() FailsafePhase { return FailsafePhaseFromRaw(v.raw, v.firmware) }
