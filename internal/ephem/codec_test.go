package ephem

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-astroclock/internal/orbit"
)

func TestLongitudeTableRoundTrip(t *testing.T) {
	seg := NewLongitudeSegment("Mars", 2451545.0, 2, []float32{10, 11.5, 13, 14.5})

	var buf bytes.Buffer
	if err := EncodeLongitudeTable(&buf, seg); err != nil {
		t.Fatalf("EncodeLongitudeTable() error = %v", err)
	}
	if got, want := buf.Len(), 64+4*4; got != want {
		t.Fatalf("encoded size = %d, want %d", got, want)
	}
	if name := string(buf.Bytes()[:16]); name != "MARS            " {
		t.Errorf("encoded name = %q, want space padded upper case", name)
	}

	got, err := DecodeLongitudeTable(&buf)
	if err != nil {
		t.Fatalf("DecodeLongitudeTable() error = %v", err)
	}
	if got.Name != "mars" {
		t.Errorf("Name = %q, want %q", got.Name, "mars")
	}
	if got.T0 != seg.T0 || got.DT != seg.DT || got.T1 != seg.T1 {
		t.Errorf("header = (%v, %v, %v), want (%v, %v, %v)", got.T0, got.DT, got.T1, seg.T0, seg.DT, seg.T1)
	}
	if len(got.Longitudes) != len(seg.Longitudes) {
		t.Fatalf("samples = %d, want %d", len(got.Longitudes), len(seg.Longitudes))
	}
	for i := range seg.Longitudes {
		if got.Longitudes[i] != seg.Longitudes[i] {
			t.Errorf("sample %d = %v, want %v", i, got.Longitudes[i], seg.Longitudes[i])
		}
	}
}

func TestDecodeLongitudeTableIgnoresTrailingSamples(t *testing.T) {
	// t1 at the last sample time declares two fewer samples than were written.
	seg := Segment{
		Name:       "sun",
		T0:         100,
		DT:         1,
		T1:         104,
		Longitudes: []float32{1, 2, 3, 4, 5},
	}
	var buf bytes.Buffer
	if err := EncodeLongitudeTable(&buf, seg); err != nil {
		t.Fatalf("EncodeLongitudeTable() error = %v", err)
	}
	got, err := DecodeLongitudeTable(&buf)
	if err != nil {
		t.Fatalf("DecodeLongitudeTable() error = %v", err)
	}
	if len(got.Longitudes) != 3 {
		t.Errorf("samples = %d, want 3", len(got.Longitudes))
	}
}

func TestDecodeLongitudeTableErrors(t *testing.T) {
	valid := func() []byte {
		var buf bytes.Buffer
		seg := NewLongitudeSegment("moon", 0, 0.5, []float32{1, 2, 3, 4, 5, 6})
		if err := EncodeLongitudeTable(&buf, seg); err != nil {
			t.Fatalf("EncodeLongitudeTable() error = %v", err)
		}
		return buf.Bytes()
	}

	badDT := valid()
	binary.BigEndian.PutUint64(badDT[24:32], math.Float64bits(0))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrShortTable},
		{"partial header", valid()[:40], ErrShortTable},
		{"truncated samples", valid()[:64+4*3], ErrShortTable},
		{"zero interval", badDT, ErrBadHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLongitudeTable(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeLongitudeTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestElementTableRoundTrip(t *testing.T) {
	records := []orbit.Elements{
		{A: 2.77, E: 0.0785, Peri: 2.6, Node: 1.4, Incl: 0.18, Lng: 1.0, DLng: 134.5, RefFrame: 2451545.0},
		{A: 2.77, E: 0.0786, Peri: 2.6, Node: 1.4, Incl: 0.18, Lng: 1.5, DLng: 134.5, RefFrame: 2451555.0},
		{A: 2.76, E: 0.0787, Peri: 2.6, Node: 1.4, Incl: 0.18, Lng: 2.0, DLng: 134.5, RefFrame: 2451565.0},
	}
	seg, err := NewElementSegment("Ceres", records)
	if err != nil {
		t.Fatalf("NewElementSegment() error = %v", err)
	}
	if seg.DT != 10 {
		t.Errorf("DT = %v, want 10", seg.DT)
	}

	var buf bytes.Buffer
	if err := EncodeElementTable(&buf, seg); err != nil {
		t.Fatalf("EncodeElementTable() error = %v", err)
	}
	if got, want := buf.Len(), 36*len(records); got != want {
		t.Fatalf("encoded size = %d, want %d", got, want)
	}

	got, err := DecodeElementTable("ceres", &buf)
	if err != nil {
		t.Fatalf("DecodeElementTable() error = %v", err)
	}
	if got.T0 != 2451545.0 || got.T1 != 2451565.0 || got.DT != 10 {
		t.Errorf("span = (%v, %v, %v), want (2451545, 10, 2451565)", got.T0, got.DT, got.T1)
	}
	for i, el := range got.Elements {
		if el.RefFrame != records[i].RefFrame {
			t.Errorf("record %d RefFrame = %v, want %v", i, el.RefFrame, records[i].RefFrame)
		}
		if el.A != float64(float32(records[i].A)) {
			t.Errorf("record %d A = %v, want %v", i, el.A, float32(records[i].A))
		}
		if el.Lng != float64(float32(records[i].Lng)) {
			t.Errorf("record %d Lng = %v, want %v", i, el.Lng, float32(records[i].Lng))
		}
	}
}

func TestDecodeElementTableErrors(t *testing.T) {
	if _, err := DecodeElementTable("ceres", bytes.NewReader(nil)); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("empty table error = %v, want %v", err, ErrEmptyTable)
	}
	if _, err := DecodeElementTable("ceres", bytes.NewReader(make([]byte, 50))); !errors.Is(err, ErrShortTable) {
		t.Errorf("partial record error = %v, want %v", err, ErrShortTable)
	}
}

func TestEncodeRejectsWrongKind(t *testing.T) {
	lng := NewLongitudeSegment("sun", 0, 1, []float32{1, 2, 3})
	el, _ := NewElementSegment("sun", []orbit.Elements{{A: 1, RefFrame: 0}})

	if err := EncodeElementTable(&bytes.Buffer{}, lng); err == nil {
		t.Error("EncodeElementTable(longitude segment) = nil, want error")
	}
	if err := EncodeLongitudeTable(&bytes.Buffer{}, el); err == nil {
		t.Error("EncodeLongitudeTable(element segment) = nil, want error")
	}
}
