package sbd

// Checksum computes the two checksum bytes of a frame as defined by the 8-bit
// Fletcher algorithm (RFC 1145). Both accumulators start at zero and overflow
// modulo 256.
func Checksum(data []byte) (a, b byte) {
	for _, c := range data {
		a += c
		b += a
	}
	return
}
