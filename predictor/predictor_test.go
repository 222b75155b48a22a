package predictor

import "testing"

type fakeHeaders struct {
	minThrottle   uint32
	vbatReference uint32
	minMotor      uint32
	motor0        uint32
	motor0OK      bool
}

func (h fakeHeaders) MinThrottle() uint32   { return h.minThrottle }
func (h fakeHeaders) VBatReference() uint32 { return h.vbatReference }
func (h fakeHeaders) MinMotor() uint32      { return h.minMotor }
func (h fakeHeaders) Motor0Value(kind FrameKind, current []uint32) (uint32, bool) {
	return h.motor0, h.motor0OK
}

func u32(v uint32) *uint32 { return &v }

func TestApplyZero(t *testing.T) {
	got, err := Apply(Zero, fakeHeaders{}, nil, Intra, 42, false, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestApplyPrevious(t *testing.T) {
	got, err := Apply(Previous, fakeHeaders{}, nil, Inter, 3, false, nil, u32(4), nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestApplyMinThrottle(t *testing.T) {
	h := fakeHeaders{minThrottle: 1000}
	got, err := Apply(MinThrottle, h, nil, Intra, 0, false, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 1000 {
		t.Fatalf("got %d, want 1000", got)
	}
}

func TestApplyMotor0Found(t *testing.T) {
	h := fakeHeaders{motor0: 1200, motor0OK: true}
	got, err := Apply(Motor0, h, nil, Intra, 5, false, []uint32{1200}, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 1205 {
		t.Fatalf("got %d, want 1205", got)
	}
}

func TestApplyMotor0Missing(t *testing.T) {
	h := fakeHeaders{motor0OK: false}
	_, err := Apply(Motor0, h, nil, Intra, 0, false, nil, nil, nil, 0)
	if err == nil {
		t.Fatal("expected error when motor[0] not yet decoded")
	}
}

func TestApplyIncrementUnsigned(t *testing.T) {
	got, err := Apply(Increment, fakeHeaders{}, nil, Inter, 0, false, nil, u32(10), nil, 2)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// 1 + skipped(2) + last(10) = 13
	if got != 13 {
		t.Fatalf("got %d, want 13", got)
	}
}

func TestApplyFifteenHundred(t *testing.T) {
	got, err := Apply(FifteenHundred, fakeHeaders{}, nil, Intra, 0, false, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 1500 {
		t.Fatalf("got %d, want 1500", got)
	}
}

func TestApplyVBatReference(t *testing.T) {
	h := fakeHeaders{vbatReference: 370}
	got, err := Apply(VBatReference, h, nil, Intra, 0, false, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 370 {
		t.Fatalf("got %d, want 370", got)
	}
}

func TestApplyMinMotor(t *testing.T) {
	h := fakeHeaders{minMotor: 1050}
	got, err := Apply(MinMotor, h, nil, Intra, 0, false, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 1050 {
		t.Fatalf("got %d, want 1050", got)
	}
}

func TestApplyHomeLatDiagnosticStub(t *testing.T) {
	got, err := Apply(HomeLat, fakeHeaders{}, nil, GPSHome, 99, false, nil, u32(5), nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 99 {
		t.Fatalf("got %d, want 99 (diff contributes 0)", got)
	}
}

func TestApplyLastMainFrameTimeDiagnosticStub(t *testing.T) {
	got, err := Apply(LastMainFrameTime, fakeHeaders{}, nil, Inter, 7, false, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestApplyStraightLineSigned(t *testing.T) {
	last := uint32(int32(-1))
	got, err := Apply(StraightLine, fakeHeaders{}, nil, Inter, 0, true, nil, &last, nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if int32(got) != -1 {
		t.Fatalf("got %d, want -1", int32(got))
	}
}

func TestApplyAverage2Unsigned(t *testing.T) {
	got, err := Apply(Average2, fakeHeaders{}, nil, Inter, 0, false, nil, u32(10), u32(4), 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestFromNumString(t *testing.T) {
	cases := []struct {
		in   string
		want Predictor
		ok   bool
	}{
		{"0", Zero, true},
		{"6", Increment, true},
		{"11", MinMotor, true},
		{"12", 0, false},
		{"x", 0, false},
	}
	for _, c := range cases {
		got, ok := FromNumString(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("FromNumString(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
