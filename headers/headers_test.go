package headers

import (
	"strings"
	"testing"

	"github.com/nsherlock/blackbox/codec"
	"github.com/nsherlock/blackbox/predictor"
)

func buildHeader(lines ...string) []byte {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("H ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func TestParseMinimal(t *testing.T) {
	data := buildHeader(
		"Product:Blackbox flight data recorder by Nicholas Sherlock",
		"Firmware revision:Betaflight 4.3.0",
		"minthrottle:1000",
		"motorOutput:1000,2000",
		"vbatref:370",
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
	)
	data = append(data, []byte("I\x05")...)

	h, rest, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.Firmware != Betaflight {
		t.Fatalf("Firmware = %v, want Betaflight", h.Firmware)
	}
	if h.MinThrottleVal != 1000 {
		t.Fatalf("MinThrottleVal = %d, want 1000", h.MinThrottleVal)
	}
	if h.MotorOutput != (MotorOutputRange{Min: 1000, Max: 2000}) {
		t.Fatalf("MotorOutput = %+v", h.MotorOutput)
	}
	if len(h.Intra) != 1 || h.Intra[0].Name != "x" {
		t.Fatalf("Intra = %+v", h.Intra)
	}
	if h.Intra[0].Predictor != predictor.Zero || h.Intra[0].Encoding != codec.Variable {
		t.Fatalf("Intra[0] = %+v", h.Intra[0])
	}
	if string(rest) != "I\x05" {
		t.Fatalf("rest = %q, want %q", rest, "I\x05")
	}
}

func TestParseUnknownFirmware(t *testing.T) {
	data := buildHeader("Firmware revision:SomeOtherFirmware 1.0")
	_, _, err := Parse(data, nil)
	if err == nil {
		t.Fatal("expected error for unrecognized firmware")
	}
}

func TestParseMismatchedFieldListLengths(t *testing.T) {
	data := buildHeader(
		"Firmware revision:INAV 5.0.0",
		"Field I name:x,y",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
	)
	_, _, err := Parse(data, nil)
	if err == nil {
		t.Fatal("expected error for mismatched Field I list lengths")
	}
}

func TestParseMissingRequiredProperty(t *testing.T) {
	data := buildHeader(
		"Firmware revision:EmuFlight 0.4.0",
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
	)
	_, _, err := Parse(data, nil)
	if err == nil {
		t.Fatal("expected error for missing Field I signed")
	}
}

func TestParseUnsupportedDataVersion(t *testing.T) {
	data := buildHeader(
		"Firmware revision:Betaflight 4.3.0",
		"Data version:3",
	)
	_, _, err := Parse(data, nil)
	if err == nil {
		t.Fatal("expected error for unsupported data version")
	}
}

func TestParsePIntervalDefaultsToEveryIteration(t *testing.T) {
	data := buildHeader("Firmware revision:Betaflight 4.3.0")
	h, _, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.PIntervalNum != 1 || h.PIntervalDenom != 1 {
		t.Fatalf("P interval = %d/%d, want 1/1", h.PIntervalNum, h.PIntervalDenom)
	}
}

func TestParsePIntervalSparse(t *testing.T) {
	data := buildHeader(
		"Firmware revision:Betaflight 4.3.0",
		"P interval:1/2",
	)
	h, _, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.PIntervalNum != 1 || h.PIntervalDenom != 2 {
		t.Fatalf("P interval = %d/%d, want 1/2", h.PIntervalNum, h.PIntervalDenom)
	}
}

func TestMotor0Index(t *testing.T) {
	data := buildHeader(
		"Firmware revision:Betaflight 4.3.0",
		"Field I name:motor[0],throttle",
		"Field I predictor:0,5",
		"Field I encoding:1,1",
		"Field I signed:0,0",
	)
	h, _, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := h.Motor0Value(predictor.Intra, []uint32{1200})
	if !ok || v != 1200 {
		t.Fatalf("Motor0Value = (%d, %v), want (1200, true)", v, ok)
	}
}
