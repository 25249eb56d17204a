package sbd

import "math"

// toFloat64 widens any supported numeric value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// toFloat64Slice widens any supported numeric slice to a float64 slice.
func toFloat64Slice(v interface{}) ([]float64, bool) {
	switch s := v.(type) {
	case []float64:
		out := make([]float64, len(s))
		copy(out, s)
		return out, true
	case []float32:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []uint8:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []uint16:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []uint32:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []int16:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []int32:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []int:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []int64:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	}
	return nil, false
}

// castValue converts a float64 to a value of the primitive type. Integer
// types truncate toward zero and clamp to the representable range.
func castValue(p PrimType, f float64) interface{} {
	switch p {
	case UInt8:
		return uint8(clamp(f, 0, math.MaxUint8))
	case UInt16:
		return uint16(clamp(f, 0, math.MaxUint16))
	case UInt32:
		return uint32(clamp(f, 0, math.MaxUint32))
	case Int16:
		return int16(clamp(f, math.MinInt16, math.MaxInt16))
	case Int32:
		return int32(clamp(f, math.MinInt32, math.MaxInt32))
	case Float32:
		return float32(f)
	}
	panic("sbd: invalid primitive type")
}

func clamp(f, lo, hi float64) float64 {
	f = math.Trunc(f)
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// castSlice converts a float64 slice to a typed slice of the primitive type.
func castSlice(p PrimType, fs []float64) interface{} {
	switch p {
	case UInt8:
		out := make([]uint8, len(fs))
		for i, f := range fs {
			out[i] = uint8(clamp(f, 0, math.MaxUint8))
		}
		return out
	case UInt16:
		out := make([]uint16, len(fs))
		for i, f := range fs {
			out[i] = uint16(clamp(f, 0, math.MaxUint16))
		}
		return out
	case UInt32:
		out := make([]uint32, len(fs))
		for i, f := range fs {
			out[i] = uint32(clamp(f, 0, math.MaxUint32))
		}
		return out
	case Int16:
		out := make([]int16, len(fs))
		for i, f := range fs {
			out[i] = int16(clamp(f, math.MinInt16, math.MaxInt16))
		}
		return out
	case Int32:
		out := make([]int32, len(fs))
		for i, f := range fs {
			out[i] = int32(clamp(f, math.MinInt32, math.MaxInt32))
		}
		return out
	case Float32:
		out := make([]float32, len(fs))
		for i, f := range fs {
			out[i] = float32(f)
		}
		return out
	}
	panic("sbd: invalid primitive type")
}
