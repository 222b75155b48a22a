package frame

import (
	"testing"

	"github.com/nsherlock/blackbox/codec"
	"github.com/nsherlock/blackbox/headers"
	"github.com/nsherlock/blackbox/internal/reader"
	"github.com/nsherlock/blackbox/predictor"
)

func TestDecodeMainIntraSingleField(t *testing.T) {
	h := &headers.Headers{
		Intra: []headers.Field{
			{Name: "x", Predictor: predictor.Zero, Encoding: codec.Variable, Signed: false},
		},
	}
	r := reader.New([]byte{0x05})
	got, err := DecodeMain(r, h, nil, KindIntra, false, nil, nil, 0)
	if err != nil {
		t.Fatalf("DecodeMain: %v", err)
	}
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("got %v, want [5]", got)
	}
}

func TestDecodeMainInterPrevious(t *testing.T) {
	h := &headers.Headers{
		Inter: []headers.Field{
			{Name: "x", Predictor: predictor.Previous, Encoding: codec.Variable, Signed: false},
		},
	}
	r := reader.New([]byte{0x02})
	last := []uint32{5}
	got, err := DecodeMain(r, h, nil, KindInter, false, last, nil, 0)
	if err != nil {
		t.Fatalf("DecodeMain: %v", err)
	}
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("got %v, want [7]", got)
	}
}

func TestDecodeMainRawSkipsPredictor(t *testing.T) {
	h := &headers.Headers{
		Inter: []headers.Field{
			{Name: "x", Predictor: predictor.Previous, Encoding: codec.Variable, Signed: false},
		},
	}
	r := reader.New([]byte{0x02})
	got, err := DecodeMain(r, h, nil, KindInter, true, []uint32{5}, nil, 0)
	if err != nil {
		t.Fatalf("DecodeMain: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("got %v, want [2] (raw, unpredicted)", got)
	}
}

func TestDecodeMainTagged16BatchAdvancesOneByte(t *testing.T) {
	fields := make([]headers.Field, 4)
	for i := range fields {
		fields[i] = headers.Field{Name: "f", Predictor: predictor.Zero, Encoding: codec.Tagged16, Signed: true}
	}
	h := &headers.Headers{Intra: fields}
	r := reader.New([]byte{0x00})
	got, err := DecodeMain(r, h, nil, KindIntra, false, nil, nil, 0)
	if err != nil {
		t.Fatalf("DecodeMain: %v", err)
	}
	want := []uint32{0, 0, 0, 0}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], v)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

func TestDecodeMainWrongKind(t *testing.T) {
	h := &headers.Headers{}
	r := reader.New(nil)
	if _, err := DecodeMain(r, h, nil, KindSlow, false, nil, nil, 0); err == nil {
		t.Fatal("expected error for non-main kind")
	}
}

func TestKindFromByte(t *testing.T) {
	cases := []struct {
		b    byte
		want Kind
		ok   bool
	}{
		{'I', KindIntra, true},
		{'P', KindInter, true},
		{'S', KindSlow, true},
		{'G', KindGPS, true},
		{'H', KindGPSHome, true},
		{'E', KindEvent, true},
		{'X', 0, false},
	}
	for _, c := range cases {
		got, ok := KindFromByte(c.b)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("KindFromByte(%q) = (%v, %v), want (%v, %v)", c.b, got, ok, c.want, c.ok)
		}
	}
}
