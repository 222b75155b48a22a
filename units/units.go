/*
DESCRIPTION
  units.go converts raw decoded field integers into physical quantities,
  grounded on original_source/blackbox-log/src/units.rs's FromRaw impls.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package units converts a blackbox log's raw decoded field integers into
// physical quantities, and interprets the bitmap-valued fields (flight
// modes, flight-controller state, failsafe phase) against firmware-
// specific tables. None of the conversions here consult frame history;
// every one is a pure function of a raw value plus header-declared
// scale parameters.
package units

import (
	"github.com/nsherlock/blackbox/headers"
)

const gravity = 9.80665 // m/s^2 per 1g, matching original_source's uom conversion.

// Time is a duration in microseconds, the field's native encoding.
type Time float64

// Seconds returns t as a floating-point number of seconds.
func (t Time) Seconds() float64 { return float64(t) / 1e6 }

// Microseconds returns t as a floating-point number of microseconds.
func (t Time) Microseconds() float64 { return float64(t) }

// TimeFromRaw converts a raw frame-time field (microseconds) to Time.
func TimeFromRaw(raw uint32) Time {
	return Time(raw)
}

// Current is an electric current in amperes.
type Current float64

// Amperes returns c in amperes.
func (c Current) Amperes() float64 { return float64(c) }

// CurrentFromRaw converts a raw amperage field, carried on the wire in
// centiamperes, to Current.
func CurrentFromRaw(raw int32) Current {
	return Current(float64(raw) / 100)
}

// Voltage is an electric potential in volts.
type Voltage float64

// Volts returns v in volts.
func (v Voltage) Volts() float64 { return float64(v) }

// VoltageFromRaw converts a raw vbat/voltage field, carried on the wire in
// centivolts, to Voltage.
func VoltageFromRaw(raw uint32) Voltage {
	return Voltage(float64(raw) / 100)
}

// Acceleration is in meters per second squared.
type Acceleration float64

// MetersPerSecondSquared returns a in m/s^2.
func (a Acceleration) MetersPerSecondSquared() float64 { return float64(a) }

// AccelerationFromRaw converts a raw accSmooth-style field to Acceleration
// using the header-declared acceleration_1g reference: (raw / 1g) * g.
func AccelerationFromRaw(raw int32, acceleration1G uint32) Acceleration {
	if acceleration1G == 0 {
		return 0
	}
	gs := float64(raw) / float64(acceleration1G)
	return Acceleration(gs * gravity)
}

// AngularVelocity is in radians per second.
type AngularVelocity float64

// RadiansPerSecond returns w in rad/s.
func (w AngularVelocity) RadiansPerSecond() float64 { return float64(w) }

// AngularVelocityFromRaw converts a raw gyro field to AngularVelocity
// using the header-declared gyro_scale reference.
func AngularVelocityFromRaw(raw int32, gyroScale float64) AngularVelocity {
	return AngularVelocity(gyroScale * float64(raw))
}

// Velocity is in meters per second.
type Velocity float64

// MetersPerSecond returns v in m/s.
func (v Velocity) MetersPerSecond() float64 { return float64(v) }

// VelocityFromRaw converts a raw GPS-speed field, carried on the wire in
// centimeters per second, to Velocity.
func VelocityFromRaw(raw uint32) Velocity {
	return Velocity(float64(raw) / 100)
}

// Length is in meters.
type Length float64

// Meters returns l in meters.
func (l Length) Meters() float64 { return float64(l) }

// LengthFromRaw converts a raw altitude/distance field, carried on the
// wire in centimeters, to Length.
func LengthFromRaw(raw int32) Length {
	return Length(float64(raw) / 100)
}

// firmwareFamily collapses Betaflight and EmuFlight into one bit-mapping
// family; INAV uses a disjoint layout. Matches the original source's
// `FirmwareKind::Betaflight | FirmwareKind::EmuFlight` match arms.
func firmwareFamily(k headers.FirmwareKind) int {
	switch k {
	case headers.Inav:
		return 1
	default:
		return 0 // Betaflight, EmuFlight, and unknown share the Betaflight table.
	}
}
