/*
DESCRIPTION
  flags.go implements FlightModeSet and StateSet, firmware-indexed
  bitmap interpretations of the raw flight-mode and state fields,
  grounded on the define_flag_set! macro expansions in
  original_source/blackbox-log/src/units.rs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package units

import (
	"sort"
	"strings"

	"github.com/nsherlock/blackbox/headers"
)

// FlightMode identifies one bit of a FlightModeSet. Not every mode has a
// bit assignment in every firmware family; is-set and name-listing both
// silently ignore a mode with no mapping for the set's firmware, per
// §4.7.
type FlightMode int

const (
	ModeAngle FlightMode = iota
	ModeHorizon
	ModeHeadFree
	ModeFailsafe
	ModeTurtle
	ModeArm
	ModeMag
	ModePassthru
	ModeGpsRescue
	ModeAntigravity
	ModeHeadAdjust
	ModeCamStab
	ModeBeeperOn
	ModeLedLow
	ModeCalib
	ModeOsd
	ModeTelemetry
	ModeServo1
	ModeServo2
	ModeServo3
	ModeBlackbox
	ModeAirmode
	ModeThreeD
	ModeFpvAngleMix
	ModeBlackboxErase
	ModeCamera1
	ModeCamera2
	ModeCamera3
	ModePrearm
	ModeBeepGpsCount
	ModeVtxPitmode
	ModeParalyze
	ModeHeading
	ModeNavAltHold
	ModeNavRth
	ModeNavPoshold
	ModeNavLaunch
	ModeManual
	ModeAutoTune
	ModeNavWp
	ModeNavCourseHold
	ModeFlaperon
	ModeTurnAssistant
	ModeSoaring
)

var flightModeNames = map[FlightMode]string{
	ModeAngle: "Angle", ModeHorizon: "Horizon", ModeHeadFree: "HeadFree",
	ModeFailsafe: "Failsafe", ModeTurtle: "Turtle", ModeArm: "Arm",
	ModeMag: "Mag", ModePassthru: "Passthru", ModeGpsRescue: "GpsRescue",
	ModeAntigravity: "Antigravity", ModeHeadAdjust: "HeadAdjust",
	ModeCamStab: "CamStab", ModeBeeperOn: "BeeperOn", ModeLedLow: "LedLow",
	ModeCalib: "Calib", ModeOsd: "Osd", ModeTelemetry: "Telemetry",
	ModeServo1: "Servo1", ModeServo2: "Servo2", ModeServo3: "Servo3",
	ModeBlackbox: "Blackbox", ModeAirmode: "Airmode", ModeThreeD: "ThreeD",
	ModeFpvAngleMix: "FpvAngleMix", ModeBlackboxErase: "BlackboxErase",
	ModeCamera1: "Camera1", ModeCamera2: "Camera2", ModeCamera3: "Camera3",
	ModePrearm: "Prearm", ModeBeepGpsCount: "BeepGpsCount",
	ModeVtxPitmode: "VtxPitmode", ModeParalyze: "Paralyze",
	ModeHeading: "Heading", ModeNavAltHold: "NavAltHold", ModeNavRth: "NavRth",
	ModeNavPoshold: "NavPoshold", ModeNavLaunch: "NavLaunch", ModeManual: "Manual",
	ModeAutoTune: "AutoTune", ModeNavWp: "NavWp", ModeNavCourseHold: "NavCourseHold",
	ModeFlaperon: "Flaperon", ModeTurnAssistant: "TurnAssistant", ModeSoaring: "Soaring",
}

// flightModeBits[family][mode] is the bit index for mode in that firmware
// family; a mode with no mapping has no entry. family 0 is Betaflight/
// EmuFlight, family 1 is INAV.
var flightModeBits = [2]map[FlightMode]int{
	0: {
		ModeAngle: 1, ModeHorizon: 2, ModeHeadFree: 4, ModeFailsafe: 6, ModeTurtle: 27,
		ModeArm: 0, ModeMag: 3, ModePassthru: 5, ModeGpsRescue: 7, ModeAntigravity: 8,
		ModeHeadAdjust: 9, ModeCamStab: 10, ModeBeeperOn: 11, ModeLedLow: 12, ModeCalib: 13,
		ModeOsd: 14, ModeTelemetry: 15, ModeServo1: 16, ModeServo2: 17, ModeServo3: 18,
		ModeBlackbox: 19, ModeAirmode: 20, ModeThreeD: 21, ModeFpvAngleMix: 22,
		ModeBlackboxErase: 23, ModeCamera1: 24, ModeCamera2: 25, ModeCamera3: 26,
		ModePrearm: 28, ModeBeepGpsCount: 29, ModeVtxPitmode: 30, ModeParalyze: 31,
	},
	1: {
		ModeAngle: 0, ModeHorizon: 1, ModeHeadFree: 6, ModeFailsafe: 9, ModeTurtle: 15,
		ModeHeading: 2, ModeNavAltHold: 3, ModeNavRth: 4, ModeNavPoshold: 5,
		ModeNavLaunch: 7, ModeManual: 8, ModeAutoTune: 10, ModeNavWp: 11,
		ModeNavCourseHold: 12, ModeFlaperon: 13, ModeTurnAssistant: 14, ModeSoaring: 16,
	},
}

// FlightModeSet is the decoded "flight mode" bitmap of an E FlightMode
// event or a main frame's flight-mode field, interpreted against the
// owning log's firmware.
type FlightModeSet struct {
	raw      uint32
	firmware headers.FirmwareKind
}

// NewFlightModeSet wraps a raw flight-mode bitmap for the given firmware.
func NewFlightModeSet(raw uint32, firmware headers.FirmwareKind) FlightModeSet {
	return FlightModeSet{raw: raw, firmware: firmware}
}

// IsSet reports whether mode is enabled. A mode with no bit mapping for
// this set's firmware always reports false.
func (s FlightModeSet) IsSet(mode FlightMode) bool {
	bit, ok := flightModeBits[firmwareFamily(s.firmware)][mode]
	if !ok {
		return false
	}
	return s.raw&(1<<uint(bit)) != 0
}

// Names returns the sorted (by bit index) names of every mode set in the
// bitmap that has a mapping for this set's firmware; unmapped bits are
// silently ignored.
func (s FlightModeSet) Names() []string {
	return bitNames(s.raw, flightModeBits[firmwareFamily(s.firmware)], flightModeNames)
}

// String renders the set as its enabled mode names joined by "|",
// mirroring original_source's Display impl.
func (s FlightModeSet) String() string {
	return strings.Join(s.Names(), "|")
}

// State identifies one bit of a StateSet.
type State int

const (
	StateGpsFixHome State = iota
	StateGpsFix
	StateGpsFixEver
	StateCalibrateMag
	StateSmallAngle
	StateFixedWingLegacy
	StateAntiWindup
	StateFlaperonAvailable
	StateNavMotorStopOrIdle
	StateCompassCalibrated
	StateAccelerometerCalibrated
	StateNavCruiseBraking
	StateNavCruiseBrakingBoost
	StateNavCruiseBrakingLocked
	StateNavExtraArmingSafetyBypassed
	StateAirmodeActive
	StateEscSensorEnabled
	StateAirplane
	StateMultirotor
	StateRover
	StateBoat
	StateAltitudeControl
	StateMoveForwardOnly
	StateSetReversibleMotorsForward
	StateFwHeadingUseYaw
	StateAntiWindupDeactivated
	StateLandingDetected
)

var stateNames = map[State]string{
	StateGpsFixHome: "GpsFixHome", StateGpsFix: "GpsFix", StateGpsFixEver: "GpsFixEver",
	StateCalibrateMag: "CalibrateMag", StateSmallAngle: "SmallAngle",
	StateFixedWingLegacy: "FixedWingLegacy", StateAntiWindup: "AntiWindup",
	StateFlaperonAvailable: "FlaperonAvailable", StateNavMotorStopOrIdle: "NavMotorStopOrIdle",
	StateCompassCalibrated: "CompassCalibrated", StateAccelerometerCalibrated: "AccelerometerCalibrated",
	StateNavCruiseBraking: "NavCruiseBraking", StateNavCruiseBrakingBoost: "NavCruiseBrakingBoost",
	StateNavCruiseBrakingLocked: "NavCruiseBrakingLocked",
	StateNavExtraArmingSafetyBypassed: "NavExtraArmingSafetyBypassed",
	StateAirmodeActive: "AirmodeActive", StateEscSensorEnabled: "EscSensorEnabled",
	StateAirplane: "Airplane", StateMultirotor: "Multirotor", StateRover: "Rover",
	StateBoat: "Boat", StateAltitudeControl: "AltitudeControl",
	StateMoveForwardOnly: "MoveForwardOnly", StateSetReversibleMotorsForward: "SetReversibleMotorsForward",
	StateFwHeadingUseYaw: "FwHeadingUseYaw", StateAntiWindupDeactivated: "AntiWindupDeactivated",
	StateLandingDetected: "LandingDetected",
}

var stateBits = [2]map[State]int{
	0: {
		StateGpsFixHome: 0, StateGpsFix: 1, StateGpsFixEver: 2,
	},
	1: {
		StateGpsFixHome: 0, StateGpsFix: 1,
		StateCalibrateMag: 2, StateSmallAngle: 3, StateFixedWingLegacy: 4,
		StateAntiWindup: 5, StateFlaperonAvailable: 6, StateNavMotorStopOrIdle: 7,
		StateCompassCalibrated: 8, StateAccelerometerCalibrated: 9,
		StateNavCruiseBraking: 11, StateNavCruiseBrakingBoost: 12,
		StateNavCruiseBrakingLocked: 13, StateNavExtraArmingSafetyBypassed: 14,
		StateAirmodeActive: 15, StateEscSensorEnabled: 16, StateAirplane: 17,
		StateMultirotor: 18, StateRover: 19, StateBoat: 20, StateAltitudeControl: 21,
		StateMoveForwardOnly: 22, StateSetReversibleMotorsForward: 23,
		StateFwHeadingUseYaw: 24, StateAntiWindupDeactivated: 25, StateLandingDetected: 26,
	},
}

// StateSet is the decoded flight-controller state bitmap carried by a
// main frame's state field.
type StateSet struct {
	raw      uint32
	firmware headers.FirmwareKind
}

// NewStateSet wraps a raw state bitmap for the given firmware.
func NewStateSet(raw uint32, firmware headers.FirmwareKind) StateSet {
	return StateSet{raw: raw, firmware: firmware}
}

// IsSet reports whether state is enabled. A state with no bit mapping
// for this set's firmware always reports false.
func (s StateSet) IsSet(state State) bool {
	bit, ok := stateBits[firmwareFamily(s.firmware)][state]
	if !ok {
		return false
	}
	return s.raw&(1<<uint(bit)) != 0
}

// Names returns the sorted (by bit index) names of every state set in the
// bitmap that has a mapping for this set's firmware.
func (s StateSet) Names() []string {
	return bitNames(s.raw, stateBits[firmwareFamily(s.firmware)], stateNames)
}

// String renders the set as its enabled state names joined by "|".
func (s StateSet) String() string {
	return strings.Join(s.Names(), "|")
}

// bitNames scans bits (a value->bit-index map, small and built once per
// firmware family at package init) for every entry whose bit is set in
// raw, and returns those entries' names in ascending bit order.
func bitNames[T comparable](raw uint32, bits map[T]int, names map[T]string) []string {
	type hit struct {
		bit  int
		name string
	}
	var hits []hit
	for val, bit := range bits {
		if raw&(1<<uint(bit)) != 0 {
			hits = append(hits, hit{bit: bit, name: names[val]})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].bit < hits[j].bit })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

// FailsafePhase is the current failsafe state machine phase, decoded
// from a firmware-indexed ordered table (§4.7, §9): Betaflight/EmuFlight
// and INAV use different-length, differently-ordered tables.
type FailsafePhase int

const (
	FailsafeIdle FailsafePhase = iota
	FailsafeRxLossDetected
	FailsafeRxLossIdle
	FailsafeReturnToHome
	FailsafeLanding
	FailsafeLanded
	FailsafeRxLossMonitoring
	FailsafeRxLossRecovered
	FailsafeGpsRescue
	FailsafeUnknown
)

func (p FailsafePhase) String() string {
	switch p {
	case FailsafeIdle:
		return "Idle"
	case FailsafeRxLossDetected:
		return "RxLossDetected"
	case FailsafeRxLossIdle:
		return "RxLossIdle"
	case FailsafeReturnToHome:
		return "ReturnToHome"
	case FailsafeLanding:
		return "Landing"
	case FailsafeLanded:
		return "Landed"
	case FailsafeRxLossMonitoring:
		return "RxLossMonitoring"
	case FailsafeRxLossRecovered:
		return "RxLossRecovered"
	case FailsafeGpsRescue:
		return "GpsRescue"
	default:
		return "Unknown"
	}
}

// betaflightFailsafeTable and inavFailsafeTable are the ordered phase
// tables indexed directly by the raw field value, copied verbatim from
// original_source/blackbox-log/src/units.rs's FailsafePhase::new. The
// tables differ in both length and phase ordering; see §9.
var (
	betaflightFailsafeTable = []FailsafePhase{
		FailsafeIdle, FailsafeRxLossDetected, FailsafeLanding, FailsafeLanded,
		FailsafeRxLossMonitoring, FailsafeRxLossRecovered, FailsafeGpsRescue,
	}
	inavFailsafeTable = []FailsafePhase{
		FailsafeIdle, FailsafeRxLossDetected, FailsafeRxLossIdle, FailsafeReturnToHome,
		FailsafeLanding, FailsafeLanded, FailsafeRxLossMonitoring, FailsafeRxLossRecovered,
	}
)

// FailsafePhaseFromRaw decodes a raw failsafe-phase field against
// firmware's table. An out-of-range raw value yields FailsafeUnknown.
func FailsafePhaseFromRaw(raw uint32, firmware headers.FirmwareKind) FailsafePhase {
	table := betaflightFailsafeTable
	if firmware == headers.Inav {
		table = inavFailsafeTable
	}
	if int(raw) >= len(table) {
		return FailsafeUnknown
	}
	return table[raw]
}
