package sbd

import "fmt"

// FramingError indicates that the start marker was found neither at the
// beginning of the buffer nor after a 5 byte gateway header, or that a stray
// start marker was encountered inside a frame.
type FramingError struct {
	Offset int
}

// Error implements the error interface.
func (e *FramingError) Error() string {
	return fmt.Sprintf("start marker not found (offset %d)", e.Offset)
}

// UnknownFieldError indicates a field ID or field name that is not part of
// the message format. Either ID or Name is set, depending on which lookup
// failed.
type UnknownFieldError struct {
	ID   FieldID
	Name string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown field: %s", e.Name)
	}
	return fmt.Sprintf("unknown field ID: 0x%02x", byte(e.ID))
}

// TruncatedError indicates that a buffer ended before the current field or
// the trailing checksum was complete.
type TruncatedError struct {
	// Field is the name of the incomplete field, or "checksum" when the
	// trailing checksum bytes are missing.
	Field string
	Need  int
	Have  int
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("message truncated in %s: %d bytes needed, %d remaining", e.Field, e.Need, e.Have)
}

// ChecksumError indicates that the trailing checksum bytes do not match the
// checksum computed over the frame.
type ChecksumError struct {
	WantA, WantB byte // computed over the frame
	GotA, GotB   byte // found in the buffer
}

// Error implements the error interface.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: computed %02x %02x, found %02x %02x",
		e.WantA, e.WantB, e.GotA, e.GotB)
}

// ArrayLengthError indicates that the value supplied for an array field does
// not have the declared element count.
type ArrayLengthError struct {
	Field string
	Want  int
	Got   int
}

// Error implements the error interface.
func (e *ArrayLengthError) Error() string {
	return fmt.Sprintf("field %s: array length mismatch: %d elements expected, %d supplied", e.Field, e.Want, e.Got)
}

// HexError indicates an invalid hexadecimal message representation.
type HexError struct {
	// Pos is the offending character position. For an odd-length input it is
	// the string length and Char is zero.
	Pos  int
	Char byte
}

// Error implements the error interface.
func (e *HexError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("hex string has odd length %d", e.Pos)
	}
	return fmt.Sprintf("invalid hex digit %q at position %d", e.Char, e.Pos)
}
