package ephem

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/litescript/ls-astroclock/internal/orbit"
)

// nameLen is the width of the space-padded body name in a longitude table.
const nameLen = 16

// maxSamples guards against allocating for a corrupt header.
const maxSamples = 1 << 26

// longitudeHeader is the fixed 64-byte header of a longitude table.
type longitudeHeader struct {
	Name [nameLen]byte
	T0   float64
	DT   float64
	T1   float64
	_    [24]byte
}

// elementRecord is one 36-byte record of an element table.
type elementRecord struct {
	JD   float64
	A    float32
	E    float32
	Peri float32
	Node float32
	Incl float32
	Lng  float32
	DLng float32
}

// declaredSamples returns the sample count implied by a longitude header.
func declaredSamples(t0, dt, t1 float64) (int, error) {
	if !(dt > 0) || math.IsNaN(t0) || math.IsNaN(t1) {
		return 0, fmt.Errorf("%w: t0=%v dt=%v t1=%v", ErrBadHeader, t0, dt, t1)
	}
	n := math.Floor((t1 - t0 - dt/2) / dt)
	if n < 0 || n > maxSamples {
		return 0, fmt.Errorf("%w: %v samples declared", ErrBadHeader, n)
	}
	return int(n), nil
}

// DecodeLongitudeTable reads a big-endian longitude table.
func DecodeLongitudeTable(r io.Reader) (Segment, error) {
	br := bufio.NewReader(r)

	var hdr longitudeHeader
	if err := binary.Read(br, binary.BigEndian, &hdr); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Segment{}, fmt.Errorf("reading header: %w", ErrShortTable)
		}
		return Segment{}, fmt.Errorf("reading header: %w", err)
	}

	n, err := declaredSamples(hdr.T0, hdr.DT, hdr.T1)
	if err != nil {
		return Segment{}, err
	}

	samples := make([]float32, n)
	if err := binary.Read(br, binary.BigEndian, samples); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Segment{}, fmt.Errorf("reading %d samples: %w", n, ErrShortTable)
		}
		return Segment{}, fmt.Errorf("reading %d samples: %w", n, err)
	}

	return Segment{
		Name:       normalizeName(string(hdr.Name[:])),
		T0:         hdr.T0,
		DT:         hdr.DT,
		T1:         hdr.T1,
		Longitudes: samples,
	}, nil
}

// EncodeLongitudeTable writes a longitude table in the binary layout read
// by DecodeLongitudeTable. The name is upper-cased and space padded.
func EncodeLongitudeTable(w io.Writer, s Segment) error {
	if s.Kind() != KindLongitude {
		return fmt.Errorf("encode longitude table: segment %q holds %s", s.Name, s.Kind())
	}
	n, err := declaredSamples(s.T0, s.DT, s.T1)
	if err != nil {
		return err
	}
	if n > len(s.Longitudes) {
		return fmt.Errorf("encode longitude table: header declares %d samples, have %d", n, len(s.Longitudes))
	}

	var hdr longitudeHeader
	name := strings.ToUpper(s.Name)
	if len(name) > nameLen {
		name = name[:nameLen]
	}
	copy(hdr.Name[:], name+strings.Repeat(" ", nameLen-len(name)))
	hdr.T0, hdr.DT, hdr.T1 = s.T0, s.DT, s.T1

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.BigEndian, &hdr); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := binary.Write(bw, binary.BigEndian, s.Longitudes); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return bw.Flush()
}

// DecodeElementTable reads a headerless element table. The body name is
// not stored in the file and must be supplied.
func DecodeElementTable(name string, r io.Reader) (Segment, error) {
	br := bufio.NewReader(r)

	var records []orbit.Elements
	for {
		var rec elementRecord
		err := binary.Read(br, binary.BigEndian, &rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Segment{}, fmt.Errorf("record %d: %w", len(records), ErrShortTable)
		}
		if err != nil {
			return Segment{}, fmt.Errorf("record %d: %w", len(records), err)
		}
		records = append(records, orbit.Elements{
			A:        float64(rec.A),
			E:        float64(rec.E),
			Peri:     float64(rec.Peri),
			Node:     float64(rec.Node),
			Incl:     float64(rec.Incl),
			Lng:      float64(rec.Lng),
			DLng:     float64(rec.DLng),
			RefFrame: rec.JD,
		})
	}
	return NewElementSegment(name, records)
}

// EncodeElementTable writes element records in the layout read by
// DecodeElementTable. Rates other than DLng are not stored.
func EncodeElementTable(w io.Writer, s Segment) error {
	if s.Kind() != KindElements {
		return fmt.Errorf("encode element table: segment %q holds %s", s.Name, s.Kind())
	}
	bw := bufio.NewWriter(w)
	for i, el := range s.Elements {
		rec := elementRecord{
			JD:   el.RefFrame,
			A:    float32(el.A),
			E:    float32(el.E),
			Peri: float32(el.Peri),
			Node: float32(el.Node),
			Incl: float32(el.Incl),
			Lng:  float32(el.Lng),
			DLng: float32(el.DLng),
		}
		if err := binary.Write(bw, binary.BigEndian, &rec); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	return bw.Flush()
}
