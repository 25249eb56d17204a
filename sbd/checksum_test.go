package sbd

import "testing"

func TestChecksum(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		a, b byte
	}{
		{"empty", nil, 0x00, 0x00},
		{"markers only", []byte{0x02, 0x03}, 0x05, 0x07},
		{"ascii", []byte("abcde"), 0xef, 0xc3},
		{"overflow", []byte{0xff, 0xff, 0xff, 0xff}, 0xfc, 0xf6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := Checksum(tc.data)
			if a != tc.a || b != tc.b {
				t.Errorf("Expected %02x %02x, got: %02x %02x", tc.a, tc.b, a, b)
			}
		})
	}
}

func TestChecksumDeterministic(t *testing.T) {
	data := []byte{0x02, 0x15, 0x00, 0x80, 0xca, 0xb7, 0x03}
	a1, b1 := Checksum(data)
	a2, b2 := Checksum(data)
	if a1 != a2 || b1 != b2 {
		t.Error("Checksum is not deterministic")
	}
}

func TestChecksumSensitivity(t *testing.T) {
	data := []byte{0x02, 0x04, 0x07, 0x14, 0xe5, 0x07, 0x05, 0x07, 0x0c, 0x22, 0x38, 0x03}
	a, b := Checksum(data)
	for i := range data {
		mutated := make([]byte, len(data))
		copy(mutated, data)
		mutated[i] ^= 0x01
		ma, mb := Checksum(mutated)
		if ma == a && mb == b {
			t.Errorf("Mutation of byte %d not detected", i)
		}
	}
}
