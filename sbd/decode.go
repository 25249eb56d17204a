package sbd

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/mdzio/go-logging"
)

var codecLog = logging.Get("sbd-codec")

// gatewayHeaderSize is the length of the out-of-band header some gateways
// prepend to a frame. Its content is not inspected.
const gatewayHeaderSize = 5

// Decode parses a binary message. The start marker must be at offset 0 or,
// after a gateway header, at offset 5. The trailing two checksum bytes are
// verified over the frame from start marker to end marker inclusive. Scaled
// fields decode to their logical float64 value, unscaled fields keep their
// primitive type. A failed decode leaves no partial state behind.
func Decode(buf []byte) (*Message, error) {
	start := 0
	if len(buf) == 0 || FieldID(buf[0]) != FieldSTX {
		// assume a gateway header
		start = gatewayHeaderSize
	}
	if len(buf) <= start || FieldID(buf[start]) != FieldSTX {
		return nil, &FramingError{Offset: start}
	}

	m := NewMessage()
	i := start + 1
	for {
		if i >= len(buf) {
			return nil, &TruncatedError{Field: "field ID", Need: 1, Have: 0}
		}
		id := FieldID(buf[i])
		if id == FieldETX {
			break
		}
		if id == FieldSTX {
			return nil, &FramingError{Offset: i}
		}
		d, err := DescriptorOf(id)
		if err != nil {
			return nil, err
		}
		i++
		size := d.payloadSize()
		if len(buf)-i < size {
			return nil, &TruncatedError{Field: d.Name, Need: size, Have: len(buf) - i}
		}
		m.put(d.Name, decodePayload(d, buf[i:i+size]))
		i += size
	}

	// i is at the end marker, two checksum bytes must follow
	end := i + 1
	if len(buf)-end < 2 {
		return nil, &TruncatedError{Field: "checksum", Need: 2, Have: len(buf) - end}
	}
	a, b := Checksum(buf[start:end])
	if buf[end] != a || buf[end+1] != b {
		return nil, &ChecksumError{WantA: a, WantB: b, GotA: buf[end], GotB: buf[end+1]}
	}
	codecLog.Tracef("Decoded message with %d fields", m.Len())
	return m, nil
}

func decodePayload(d *Descriptor, payload []byte) interface{} {
	switch d.Shape {
	case ShapeNone:
		return nil
	case ShapeBytes:
		b := make([]byte, len(payload))
		copy(b, payload)
		return b
	case ShapeDateTime:
		return decodeDateTime(payload)
	case ShapeScalar:
		raw := decodeScalar(d.Prim, payload)
		if d.Scale != 0 {
			f, _ := toFloat64(raw)
			return f * d.Scale
		}
		return raw
	case ShapeArray:
		size := d.Prim.Size()
		if d.Scale != 0 {
			out := make([]float64, d.Count)
			for i := range out {
				f, _ := toFloat64(decodeScalar(d.Prim, payload[i*size:]))
				out[i] = f * d.Scale
			}
			return out
		}
		return decodeArray(d.Prim, d.Count, payload)
	}
	panic("sbd: invalid shape")
}

func decodeScalar(p PrimType, b []byte) interface{} {
	switch p {
	case UInt8:
		return b[0]
	case UInt16:
		return binary.LittleEndian.Uint16(b)
	case UInt32:
		return binary.LittleEndian.Uint32(b)
	case Int16:
		return int16(binary.LittleEndian.Uint16(b))
	case Int32:
		return int32(binary.LittleEndian.Uint32(b))
	case Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	panic("sbd: invalid primitive type")
}

func decodeArray(p PrimType, count int, b []byte) interface{} {
	size := p.Size()
	switch p {
	case UInt8:
		out := make([]uint8, count)
		copy(out, b)
		return out
	case UInt16:
		out := make([]uint16, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(b[i*size:])
		}
		return out
	case UInt32:
		out := make([]uint32, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(b[i*size:])
		}
		return out
	case Int16:
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(binary.LittleEndian.Uint16(b[i*size:]))
		}
		return out
	case Int32:
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(b[i*size:]))
		}
		return out
	case Float32:
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size:]))
		}
		return out
	}
	panic("sbd: invalid primitive type")
}

func decodeDateTime(b []byte) time.Time {
	year := binary.LittleEndian.Uint16(b)
	return time.Date(int(year), time.Month(b[2]), int(b[3]),
		int(b[4]), int(b[5]), int(b[6]), 0, time.UTC)
}
