/*
DESCRIPTION
  headers.go implements the line-oriented textual header-block parser: it
  assembles firmware metadata and the per-frame-kind field-definition
  tables from the "H <key>:<value>\n" lines preceding a log's binary data
  section.

AUTHORS
  Grounded on the Key<Name> constant + per-key setter dispatch idiom of
  github.com/ausocean/av/revid/config/variables.go, and on
  original_source/blackbox-log/src/parser/frame/mod.rs's
  parse_frame_def_header/parse_enum_list for the field-definition grammar.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package headers parses a blackbox log's textual header block into
// firmware metadata, numeric reference parameters, and the per-frame-kind
// field-definition tables the frame package decodes against.
package headers

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"

	"github.com/nsherlock/blackbox/codec"
	"github.com/nsherlock/blackbox/predictor"
)

// ErrCorrupted is returned for a malformed header block: a missing
// required field-definition property, mismatched comma-separated list
// lengths, or an unparsable predictor/encoding code point.
var ErrCorrupted = errors.New("corrupted header block")

// ErrUnknownFirmware is returned when the Firmware revision header names
// a firmware family this decoder does not recognize.
var ErrUnknownFirmware = errors.New("unknown firmware")

// ErrUnsupportedVersion is returned when the "Data version" header names
// a data_version this decoder does not recognize (only "1" and "2" are
// defined, per §3).
var ErrUnsupportedVersion = errors.New("unsupported data version")

// FirmwareKind identifies the flight-controller firmware family that
// wrote a log, since field layout and bit-flag tables differ between
// them.
type FirmwareKind uint8

const (
	UnknownFirmwareKind FirmwareKind = iota
	Betaflight
	EmuFlight
	Inav
)

func (k FirmwareKind) String() string {
	switch k {
	case Betaflight:
		return "Betaflight"
	case EmuFlight:
		return "EmuFlight"
	case Inav:
		return "INAV"
	default:
		return "Unknown"
	}
}

// DataVersion is the log format's declared data_version header. Only "1"
// and "2" are accepted (any other value is ErrUnsupportedVersion); the
// accepted value is not branched on anywhere in this decoder and is kept
// as a reserved field (see DESIGN.md).
type DataVersion uint8

const (
	V1 DataVersion = iota
	V2
)

// Field is one entry of a per-frame-kind field-definition table.
type Field struct {
	Name      string
	Predictor predictor.Predictor
	Encoding  codec.Encoding
	Signed    bool
}

// MotorOutputRange is the headers-declared minimum and maximum raw motor
// output value.
type MotorOutputRange struct {
	Min uint32
	Max uint32
}

// Headers is the immutable metadata and field-layout table parsed from a
// log's header block. It implements predictor.Headers.
type Headers struct {
	Firmware        FirmwareKind
	FirmwareVersion string
	Product         string
	CraftName       string
	DataVersion     DataVersion

	MinThrottleVal   uint32
	MotorOutput      MotorOutputRange
	VBatReferenceVal uint32
	Acceleration1G   *uint32
	GyroScale        *float64

	// PIntervalNum/PIntervalDenom are the "P interval" header's sparse-
	// logging ratio (e.g. "1/2" logs every other main-loop iteration as
	// a P frame). Both default to 1 when absent, meaning every
	// iteration is logged and no frames are ever skipped.
	PIntervalNum   uint32
	PIntervalDenom uint32

	// Extra retains the value of every "H key:value" line other than the
	// field-definition lines, recognized keys included, for metadata
	// consumers that want it; it never affects parsing.
	Extra map[string]string

	Intra   []Field
	Inter   []Field
	Slow    []Field
	GPS     []Field
	GPSHome []Field

	motor0Index map[predictor.FrameKind]int
}

// MinThrottle implements predictor.Headers.
func (h *Headers) MinThrottle() uint32 { return h.MinThrottleVal }

// VBatReference implements predictor.Headers.
func (h *Headers) VBatReference() uint32 { return h.VBatReferenceVal }

// MinMotor implements predictor.Headers.
func (h *Headers) MinMotor() uint32 { return h.MotorOutput.Min }

// Motor0Value implements predictor.Headers: it returns the raw value
// already decoded in current for the field named "motor[0]" in kind's
// field-definition table, if any field at a lower index was so named.
func (h *Headers) Motor0Value(kind predictor.FrameKind, current []uint32) (uint32, bool) {
	idx, ok := h.motor0Index[kind]
	if !ok || idx < 0 || idx >= len(current) {
		return 0, false
	}
	return current[idx], true
}

// fieldsFor returns a pointer to the slice backing the given letter's
// field-definition table, so parsing can append to it in place.
func (h *Headers) fieldsFor(kind string) (*[]Field, predictor.FrameKind, bool) {
	switch kind {
	case "I":
		return &h.Intra, predictor.Intra, true
	case "P":
		return &h.Inter, predictor.Inter, true
	case "S":
		return &h.Slow, predictor.Slow, true
	case "G":
		return &h.GPS, predictor.GPS, true
	case "H":
		return &h.GPSHome, predictor.GPSHome, true
	default:
		return nil, 0, false
	}
}

// pendingFrameDef accumulates the four parallel "Field <K> <property>"
// lists for one frame kind until all four have arrived, so they can be
// validated for equal length before being materialized into Field values.
type pendingFrameDef struct {
	names      []string
	predictors []string
	encodings  []string
	signs      []string
}

// Parse consumes the header block at the start of data: every line of the
// form "H key:value\n" up to (but not including) the first line that does
// not begin with "H ". It returns the parsed Headers and the unconsumed
// remainder of data, which begins the binary frame section.
func Parse(data []byte, log logging.Logger) (*Headers, []byte, error) {
	h := &Headers{
		Extra:          map[string]string{},
		motor0Index:    map[predictor.FrameKind]int{},
		PIntervalNum:   1,
		PIntervalDenom: 1,
	}
	pending := map[string]*pendingFrameDef{}

	rest := data
	for {
		if !bytes.HasPrefix(rest, []byte("H ")) {
			break
		}
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			return nil, nil, errors.Wrap(ErrCorrupted, "unterminated header line")
		}
		line := string(rest[len("H ") : nl])
		rest = rest[nl+1:]

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, nil, errors.Wrapf(ErrCorrupted, "malformed header line %q", line)
		}
		value = strings.TrimSpace(value)

		if kind, property, ok := parseFieldDefHeader(key); ok {
			def, ok := pending[kind]
			if !ok {
				def = &pendingFrameDef{}
				pending[kind] = def
			}
			switch property {
			case "name":
				def.names = split(value)
			case "predictor":
				def.predictors = split(value)
			case "encoding":
				def.encodings = split(value)
			case "signed":
				def.signs = split(value)
			}
			continue
		}

		if err := h.setField(key, value); err != nil {
			return nil, nil, err
		}
	}

	for kind, def := range pending {
		if err := h.materializeFrameDef(kind, def); err != nil {
			return nil, nil, err
		}
	}

	if h.Firmware == UnknownFirmwareKind {
		if log != nil {
			log.Warning("header block named no recognized firmware", "revision", h.FirmwareVersion)
		}
		return nil, nil, errors.Wrapf(ErrUnknownFirmware, "firmware revision %q", h.FirmwareVersion)
	}

	h.indexMotor0()

	return h, rest, nil
}

func split(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseFieldDefHeader splits a header key of the form "Field <K> <property>"
// into its frame-kind letter and property name.
func parseFieldDefHeader(key string) (kind, property string, ok bool) {
	rest, ok := strings.CutPrefix(key, "Field ")
	if !ok {
		return "", "", false
	}
	kind, property, ok = strings.Cut(rest, " ")
	if !ok {
		return "", "", false
	}
	switch property {
	case "name", "predictor", "encoding", "signed":
	default:
		return "", "", false
	}
	return kind, property, true
}

func (h *Headers) materializeFrameDef(kind string, def *pendingFrameDef) error {
	target, _, ok := h.fieldsFor(kind)
	if !ok {
		return errors.Wrapf(ErrCorrupted, "field definitions for unknown frame kind %q", kind)
	}
	if def.names == nil {
		return errors.Wrapf(ErrCorrupted, "missing header \"Field %s name\"", kind)
	}
	if def.predictors == nil {
		return errors.Wrapf(ErrCorrupted, "missing header \"Field %s predictor\"", kind)
	}
	if def.encodings == nil {
		return errors.Wrapf(ErrCorrupted, "missing header \"Field %s encoding\"", kind)
	}
	if def.signs == nil {
		return errors.Wrapf(ErrCorrupted, "missing header \"Field %s signed\"", kind)
	}
	n := len(def.names)
	if len(def.predictors) != n || len(def.encodings) != n || len(def.signs) != n {
		return errors.Wrapf(ErrCorrupted, "mismatched Field %s property list lengths", kind)
	}

	fields := make([]Field, n)
	for i := 0; i < n; i++ {
		p, ok := predictor.FromNumString(def.predictors[i])
		if !ok {
			return errors.Wrapf(ErrCorrupted, "invalid Field %s predictor %q", kind, def.predictors[i])
		}
		e, ok := codec.FromNumString(def.encodings[i])
		if !ok {
			return errors.Wrapf(ErrCorrupted, "invalid Field %s encoding %q", kind, def.encodings[i])
		}
		fields[i] = Field{
			Name:      def.names[i],
			Predictor: p,
			Encoding:  e,
			Signed:    def.signs[i] != "0",
		}
	}
	*target = fields
	return nil
}

func (h *Headers) indexMotor0() {
	tables := []struct {
		kind   predictor.FrameKind
		fields []Field
	}{
		{predictor.Intra, h.Intra},
		{predictor.Inter, h.Inter},
		{predictor.Slow, h.Slow},
		{predictor.GPS, h.GPS},
		{predictor.GPSHome, h.GPSHome},
	}
	for _, t := range tables {
		idx := -1
		for i, f := range t.fields {
			if f.Name == "motor[0]" {
				idx = i
				break
			}
		}
		h.motor0Index[t.kind] = idx
	}
}

// firmwareKindFromRevision applies a case-insensitive substring match over
// the Firmware revision header value, per the grammar in §4.4.
func firmwareKindFromRevision(s string) FirmwareKind {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "betaflight"):
		return Betaflight
	case strings.Contains(lower, "emuflight"):
		return EmuFlight
	case strings.Contains(lower, "inav"):
		return Inav
	default:
		return UnknownFirmwareKind
	}
}

func (h *Headers) setField(key, value string) error {
	switch key {
	case "Product":
		h.Product = value
	case "Craft name":
		h.CraftName = value
	case "Firmware revision":
		h.FirmwareVersion = value
		h.Firmware = firmwareKindFromRevision(value)
	case "Firmware type", "Firmware date":
		// retained via Extra below; no dedicated field.
	case "Data version":
		switch value {
		case "1":
			h.DataVersion = V1
		case "2":
			h.DataVersion = V2
		default:
			return errors.Wrapf(ErrUnsupportedVersion, "data version %q", value)
		}
	case "P interval":
		num, denom, ok := strings.Cut(value, "/")
		if !ok {
			return errors.Wrapf(ErrCorrupted, "invalid P interval %q", value)
		}
		n, err := strconv.ParseUint(strings.TrimSpace(num), 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid P interval numerator %q", num)
		}
		d, err := strconv.ParseUint(strings.TrimSpace(denom), 10, 32)
		if err != nil || d == 0 {
			return errors.Wrapf(ErrCorrupted, "invalid P interval denominator %q", denom)
		}
		h.PIntervalNum = uint32(n)
		h.PIntervalDenom = uint32(d)
	case "minthrottle":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid minthrottle %q", value)
		}
		h.MinThrottleVal = uint32(v)
	case "maxthrottle":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid maxthrottle %q", value)
		}
		_ = v // maxthrottle has no predictor consumer; retained via Extra.
	case "motorOutput":
		lo, hi, ok := strings.Cut(value, ",")
		if !ok {
			return errors.Wrapf(ErrCorrupted, "invalid motorOutput %q", value)
		}
		min, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid motorOutput min %q", lo)
		}
		max, err := strconv.ParseUint(strings.TrimSpace(hi), 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid motorOutput max %q", hi)
		}
		h.MotorOutput = MotorOutputRange{Min: uint32(min), Max: uint32(max)}
	case "vbatref":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid vbatref %q", value)
		}
		h.VBatReferenceVal = uint32(v)
	case "acc_1G":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid acc_1G %q", value)
		}
		v32 := uint32(v)
		h.Acceleration1G = &v32
	case "gyro_scale":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrapf(ErrCorrupted, "invalid gyro_scale %q", value)
		}
		h.GyroScale = &v
	}
	h.Extra[key] = value
	return nil
}
