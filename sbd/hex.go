package sbd

import "encoding/hex"

// ToHex renders a binary message as its ASCII representation: two lowercase
// hex digits per byte, no separators.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex converts the ASCII representation of a binary message back to
// bytes. The string is consumed two characters at a time; an odd length or a
// character outside [0-9a-fA-F] fails with a HexError.
func FromHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &HexError{Pos: len(s)}
	}
	data := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := hexDigit(s[i])
		if !ok {
			return nil, &HexError{Pos: i, Char: s[i]}
		}
		lo, ok := hexDigit(s[i+1])
		if !ok {
			return nil, &HexError{Pos: i + 1, Char: s[i+1]}
		}
		data[i/2] = hi<<4 | lo
	}
	return data, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
