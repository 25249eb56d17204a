package sbd

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func frame(t *testing.T, s string) []byte {
	t.Helper()
	b, err := FromHex(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want map[string]interface{}
	}{
		{
			"empty frame",
			"02 03 05 07",
			map[string]interface{}{},
		},
		{
			"version and timestamp",
			"02 04 07 14 e5 07 05 07 0c 22 38 03 82 e1",
			map[string]interface{}{
				"SWVER":    uint8(7),
				"DATETIME": time.Date(2021, 5, 7, 12, 34, 56, 0, time.UTC),
			},
		},
		{
			"trigger field",
			"02 58 03 5d b9",
			map[string]interface{}{
				"USERFUNC1": nil,
			},
		},
		{
			"geofence status array",
			"02 1d 01 02 03 03 28 b0",
			map[string]interface{}{
				"GEOFSTAT": []uint8{1, 2, 3},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Decode(frame(t, tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if m.Len() != len(tc.want) {
				t.Fatalf("Expected %d fields, got: %d", len(tc.want), m.Len())
			}
			for name, want := range tc.want {
				got, ok := m.Get(name)
				if !ok {
					t.Errorf("Field %s missing", name)
					continue
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("Field %s: expected %v (%T), got: %v (%T)", name, want, want, got, got)
				}
			}
		})
	}
}

func TestDecodeScaled(t *testing.T) {
	// LAT raw 100000000, scale 1e-7
	m, err := Decode(frame(t, "02 15 00 e1 f5 05 03 f5 fc"))
	if err != nil {
		t.Fatal(err)
	}
	v, ok := m.Get("LAT")
	if !ok {
		t.Fatal("Field LAT missing")
	}
	lat, ok := v.(float64)
	if !ok {
		t.Fatalf("Expected float64, got: %T", v)
	}
	if lat < 10.0-1e-6 || lat > 10.0+1e-6 {
		t.Errorf("Expected 10.0, got: %v", lat)
	}
}

func TestDecodeGatewayHeader(t *testing.T) {
	plain := frame(t, "02 04 07 14 e5 07 05 07 0c 22 38 03 82 e1")
	prefixed := append(frame(t, "aa bb cc dd ee"), plain...)
	m1, err := Decode(plain)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Decode(prefixed)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m1.Names(), m2.Names()) {
		t.Error("Field sets differ")
	}
	for _, n := range m1.Names() {
		v1, _ := m1.Get(n)
		v2, _ := m2.Get(n)
		if !reflect.DeepEqual(v1, v2) {
			t.Errorf("Field %s differs: %v != %v", n, v1, v2)
		}
	}
}

func TestDecodeFramingError(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty buffer", ""},
		{"no start marker", "ff"},
		{"no start marker after header", "ff 01 02 03 04 05 06"},
		{"stray start marker", "02 02 03 07 0e"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(frame(t, tc.in))
			var ferr *FramingError
			if !errors.As(err, &ferr) {
				t.Errorf("Expected FramingError, got: %v", err)
			}
		})
	}
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode(frame(t, "02 ff 03 04 09"))
	var uerr *UnknownFieldError
	if !errors.As(err, &uerr) {
		t.Fatalf("Expected UnknownFieldError, got: %v", err)
	}
	if uerr.ID != 0xff {
		t.Errorf("Expected ID 0xff, got: 0x%02x", byte(uerr.ID))
	}
}

func TestDecodeTruncated(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"mid field", "02 15 01 02"},
		{"missing end marker", "02 04 07"},
		{"missing checksum", "02 03 05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(frame(t, tc.in))
			var terr *TruncatedError
			if !errors.As(err, &terr) {
				t.Errorf("Expected TruncatedError, got: %v", err)
			}
		})
	}
}

func TestDecodeChecksumMismatch(t *testing.T) {
	_, err := Decode(frame(t, "02 03 05 08"))
	var cerr *ChecksumError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ChecksumError, got: %v", err)
	}
	if cerr.WantA != 0x05 || cerr.WantB != 0x07 {
		t.Errorf("Expected computed 05 07, got: %02x %02x", cerr.WantA, cerr.WantB)
	}
}
