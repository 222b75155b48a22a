package blackbox

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nsherlock/blackbox/frame"
)

func buildLog(headerLines []string, data []byte) []byte {
	var b strings.Builder
	for _, l := range headerLines {
		b.WriteString("H ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return append([]byte(b.String()), data...)
}

func minimalHeaders(extra ...string) []string {
	lines := []string{
		"Product:Blackbox flight data recorder by Nicholas Sherlock",
		"Firmware revision:Betaflight 4.3.0",
		"minthrottle:1000",
		"motorOutput:1000,2000",
		"vbatref:370",
	}
	return append(lines, extra...)
}

func TestParseLogIntraOnlySingleField(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
	), []byte{'I', 0x05})

	l, err := parseLog(data, Config{})
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	if len(l.MainFrames()) != 1 {
		t.Fatalf("MainFrames = %v, want 1 frame", l.MainFrames())
	}
	if got := l.MainFrames()[0].Values; len(got) != 1 || got[0] != 5 {
		t.Fatalf("frame values = %v, want [5]", got)
	}
	if l.Stats().IntraCount != 1 {
		t.Fatalf("IntraCount = %d, want 1", l.Stats().IntraCount)
	}
}

func TestParseLogIntraThenInterPrevious(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
		"Field P name:x",
		"Field P predictor:1",
		"Field P encoding:1",
		"Field P signed:0",
	), []byte{'I', 0x05, 'P', 0x02})

	l, err := parseLog(data, Config{})
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	frames := l.MainFrames()
	want := []Frame{
		{Kind: frame.KindIntra, Values: []uint32{5}},
		{Kind: frame.KindInter, Values: []uint32{7}},
	}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Fatalf("MainFrames mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLogInterBeforeIntraIsCorrupted(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field P name:x",
		"Field P predictor:1",
		"Field P encoding:1",
		"Field P signed:0",
	), []byte{'P', 0x02})

	_, err := parseLog(data, Config{})
	if err == nil {
		t.Fatal("expected error for inter frame before any intra frame")
	}
}

func TestParseLogUnknownFrameByte(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
	), []byte{'X'})

	_, err := parseLog(data, Config{})
	if err == nil {
		t.Fatal("expected error for an unrecognized frame kind byte")
	}
}

func TestParseLogConfigRawSkipsPredictor(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
		"Field P name:x",
		"Field P predictor:1",
		"Field P encoding:1",
		"Field P signed:0",
	), []byte{'I', 0x05, 'P', 0x02})

	l, err := parseLog(data, Config{Raw: true})
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	frames := l.MainFrames()
	if frames[0].Values[0] != 5 || frames[1].Values[0] != 2 {
		t.Fatalf("got [%d, %d], want [5, 2] (raw, unpredicted)", frames[0].Values[0], frames[1].Values[0])
	}
}

func TestParseLogEndEventTerminatesSuccessfully(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
	), nil)
	data = append(data, 'I', 0x05)
	data = append(data, 'E', frame.EventLogEnd)
	data = append(data, []byte("End of log\x00")...)
	data = append(data, "trailing garbage that must be ignored"...)

	l, err := parseLog(data, Config{})
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	if len(l.MainFrames()) != 1 {
		t.Fatalf("MainFrames = %v, want 1 frame", l.MainFrames())
	}
	if len(l.Events()) != 1 {
		t.Fatalf("Events = %v, want 1 event", l.Events())
	}
	if _, ok := l.Events()[0].Payload.(frame.LogEnd); !ok {
		t.Fatalf("Events()[0].Payload = %T, want frame.LogEnd", l.Events()[0].Payload)
	}
}

func TestParseLogTagged16BatchOfFourZeroFields(t *testing.T) {
	var lines []string
	for _, prop := range []struct{ key, val string }{
		{"name", "a,b,c,d"},
		{"predictor", "0,0,0,0"},
		{"encoding", "8,8,8,8"},
		{"signed", "1,1,1,1"},
	} {
		lines = append(lines, "Field I "+prop.key+":"+prop.val)
	}
	data := buildLog(minimalHeaders(lines...), []byte{'I', 0x00})

	l, err := parseLog(data, Config{})
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	want := []uint32{0, 0, 0, 0}
	got := l.MainFrames()[0].Values
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIterFieldsAndFrames(t *testing.T) {
	data := buildLog(minimalHeaders(
		"Field I name:x",
		"Field I predictor:0",
		"Field I encoding:1",
		"Field I signed:0",
	), []byte{'I', 0x05})

	l, err := parseLog(data, Config{})
	if err != nil {
		t.Fatalf("parseLog: %v", err)
	}
	fields := l.IterFields()
	if len(fields) != 1 || fields[0].Name != "x" {
		t.Fatalf("IterFields() = %+v", fields)
	}
	rows := l.IterFrames()
	if len(rows) != 1 || rows[0][0].Unsigned() != 5 {
		t.Fatalf("IterFrames() = %+v", rows)
	}
}
