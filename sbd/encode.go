package sbd

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Encode serializes a message into a framed, checksummed buffer. Fields are
// emitted in the canonical order of the field table, not in the message's
// insertion order. Scaled fields divide the logical value by the scale
// before serializing. Opaque block fields always emit their declared length
// of zero bytes; the tracker firmware fills them on its side. An array value
// whose element count differs from the declared count fails with an
// ArrayLengthError.
func Encode(m *Message) ([]byte, error) {
	buf := []byte{byte(FieldSTX)}
	for _, d := range Fields() {
		v, ok := m.Get(d.Name)
		if !ok {
			continue
		}
		buf = append(buf, byte(d.ID))
		var err error
		buf, err = appendPayload(buf, d, v)
		if err != nil {
			return nil, err
		}
	}
	buf = append(buf, byte(FieldETX))
	a, b := Checksum(buf)
	buf = append(buf, a, b)
	codecLog.Tracef("Encoded message of %d bytes", len(buf))
	return buf, nil
}

func appendPayload(buf []byte, d *Descriptor, v interface{}) ([]byte, error) {
	switch d.Shape {
	case ShapeNone:
		return buf, nil
	case ShapeBytes:
		return append(buf, make([]byte, d.Count)...), nil
	case ShapeDateTime:
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("field %s: time.Time expected, got %T", d.Name, v)
		}
		return appendDateTime(buf, t), nil
	case ShapeScalar:
		f, ok := toFloat64(v)
		if !ok {
			return nil, fmt.Errorf("field %s: numeric value expected, got %T", d.Name, v)
		}
		if d.Scale != 0 {
			f /= d.Scale
		}
		return appendScalar(buf, d.Prim, f), nil
	case ShapeArray:
		fs, ok := toFloat64Slice(v)
		if !ok {
			return nil, fmt.Errorf("field %s: numeric slice expected, got %T", d.Name, v)
		}
		if len(fs) != d.Count {
			return nil, &ArrayLengthError{Field: d.Name, Want: d.Count, Got: len(fs)}
		}
		for _, f := range fs {
			if d.Scale != 0 {
				f /= d.Scale
			}
			buf = appendScalar(buf, d.Prim, f)
		}
		return buf, nil
	}
	panic("sbd: invalid shape")
}

func appendScalar(buf []byte, p PrimType, f float64) []byte {
	switch p {
	case UInt8:
		return append(buf, castValue(p, f).(uint8))
	case UInt16:
		return appendUint16(buf, castValue(p, f).(uint16))
	case UInt32:
		return appendUint32(buf, castValue(p, f).(uint32))
	case Int16:
		return appendUint16(buf, uint16(castValue(p, f).(int16)))
	case Int32:
		return appendUint32(buf, uint32(castValue(p, f).(int32)))
	case Float32:
		return appendUint32(buf, math.Float32bits(float32(f)))
	}
	panic("sbd: invalid primitive type")
}

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendDateTime(buf []byte, t time.Time) []byte {
	buf = appendUint16(buf, uint16(t.Year()))
	return append(buf, byte(t.Month()), byte(t.Day()),
		byte(t.Hour()), byte(t.Minute()), byte(t.Second()))
}
