// Package sbd implements the binary short burst data (SBD) message format of
// the Artemis Global Tracker. A message is a sequence of tagged fields between
// a start and an end marker, followed by a two byte Fletcher checksum. Field
// payloads are little-endian.
package sbd

import "fmt"

// FieldID identifies a field on the wire.
type FieldID byte

// Field identifiers of the tracker message format.
const (
	FieldSTX       FieldID = 0x02
	FieldETX       FieldID = 0x03
	FieldSWVER     FieldID = 0x04
	FieldSOURCE    FieldID = 0x08
	FieldBATTV     FieldID = 0x09
	FieldPRESS     FieldID = 0x0a
	FieldTEMP      FieldID = 0x0b
	FieldHUMID     FieldID = 0x0c
	FieldYEAR      FieldID = 0x0d
	FieldMONTH     FieldID = 0x0e
	FieldDAY       FieldID = 0x0f
	FieldHOUR      FieldID = 0x10
	FieldMIN       FieldID = 0x11
	FieldSEC       FieldID = 0x12
	FieldMILLIS    FieldID = 0x13
	FieldDATETIME  FieldID = 0x14
	FieldLAT       FieldID = 0x15
	FieldLON       FieldID = 0x16
	FieldALT       FieldID = 0x17
	FieldSPEED     FieldID = 0x18
	FieldHEAD      FieldID = 0x19
	FieldSATS      FieldID = 0x1a
	FieldPDOP      FieldID = 0x1b
	FieldFIX       FieldID = 0x1c
	FieldGEOFSTAT  FieldID = 0x1d
	FieldUSERVAL1  FieldID = 0x20
	FieldUSERVAL2  FieldID = 0x21
	FieldUSERVAL3  FieldID = 0x22
	FieldUSERVAL4  FieldID = 0x23
	FieldUSERVAL5  FieldID = 0x24
	FieldUSERVAL6  FieldID = 0x25
	FieldUSERVAL7  FieldID = 0x26
	FieldUSERVAL8  FieldID = 0x27
	FieldMOFIELDS  FieldID = 0x30
	FieldFLAGS1    FieldID = 0x31
	FieldFLAGS2    FieldID = 0x32
	FieldDEST      FieldID = 0x33
	FieldHIPRESS   FieldID = 0x34
	FieldLOPRESS   FieldID = 0x35
	FieldHITEMP    FieldID = 0x36
	FieldLOTEMP    FieldID = 0x37
	FieldHIHUMID   FieldID = 0x38
	FieldLOHUMID   FieldID = 0x39
	FieldGEOFNUM   FieldID = 0x3a
	FieldGEOF1LAT  FieldID = 0x3b
	FieldGEOF1LON  FieldID = 0x3c
	FieldGEOF1RAD  FieldID = 0x3d
	FieldGEOF2LAT  FieldID = 0x3e
	FieldGEOF2LON  FieldID = 0x3f
	FieldGEOF2RAD  FieldID = 0x40
	FieldGEOF3LAT  FieldID = 0x41
	FieldGEOF3LON  FieldID = 0x42
	FieldGEOF3RAD  FieldID = 0x43
	FieldGEOF4LAT  FieldID = 0x44
	FieldGEOF4LON  FieldID = 0x45
	FieldGEOF4RAD  FieldID = 0x46
	FieldWAKEINT   FieldID = 0x47
	FieldALARMINT  FieldID = 0x48
	FieldTXINT     FieldID = 0x49
	FieldLOWBATT   FieldID = 0x4a
	FieldDYNMODEL  FieldID = 0x4b
	FieldRBHEAD    FieldID = 0x52
	FieldUSERFUNC1 FieldID = 0x58
	FieldUSERFUNC2 FieldID = 0x59
	FieldUSERFUNC3 FieldID = 0x5a
	FieldUSERFUNC4 FieldID = 0x5b
	FieldUSERFUNC5 FieldID = 0x5c
	FieldUSERFUNC6 FieldID = 0x5d
	FieldUSERFUNC7 FieldID = 0x5e
	FieldUSERFUNC8 FieldID = 0x5f
)

// Shape describes the wire layout of a field payload.
type Shape int

// Possible field shapes.
const (
	// ShapeNone has no payload. It is used for the structural markers and
	// for zero-length trigger fields.
	ShapeNone Shape = iota
	// ShapeScalar is a single primitive value.
	ShapeScalar
	// ShapeArray is a fixed number of primitive values.
	ShapeArray
	// ShapeBytes is a fixed-length opaque block. The tracker firmware fills
	// these fields itself; the encoder always emits zero bytes for them.
	ShapeBytes
	// ShapeDateTime is a packed timestamp: uint16 year followed by month,
	// day, hour, minute and second as single bytes (7 bytes total).
	ShapeDateTime
)

// PrimType is the primitive type of a scalar or array field payload.
type PrimType int

// Supported primitive types.
const (
	UInt8 PrimType = iota
	UInt16
	UInt32
	Int16
	Int32
	Float32
)

// Size returns the wire size of the primitive type in bytes.
func (p PrimType) Size() int {
	switch p {
	case UInt8:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	}
	panic(fmt.Sprintf("sbd: invalid primitive type: %d", int(p)))
}

// Descriptor describes a single field of the message format.
type Descriptor struct {
	ID    FieldID
	Name  string
	Shape Shape
	// Prim is the primitive type for ShapeScalar and ShapeArray fields.
	Prim PrimType
	// Count is the element count for ShapeArray fields and the byte length
	// for ShapeBytes fields.
	Count int
	// Scale converts the raw wire integer to the logical value. 0 means the
	// field is unscaled.
	Scale float64
}

// Marker returns true for the structural start/end markers. Markers carry no
// payload and never appear as data fields in a Message.
func (d *Descriptor) Marker() bool {
	return d.ID == FieldSTX || d.ID == FieldETX
}

// payloadSize returns the number of payload bytes following the field ID.
func (d *Descriptor) payloadSize() int {
	switch d.Shape {
	case ShapeNone:
		return 0
	case ShapeScalar:
		return d.Prim.Size()
	case ShapeArray:
		return d.Prim.Size() * d.Count
	case ShapeBytes:
		return d.Count
	case ShapeDateTime:
		return 7
	}
	panic(fmt.Sprintf("sbd: invalid shape: %d", int(d.Shape)))
}

// registry lists all fields of the message format. The slice order is the
// canonical field order of an encoded message. Entries and scales follow the
// tracker documentation (Tracker_Message_Fields.h).
var registry = []Descriptor{
	{ID: FieldSTX, Name: "STX", Shape: ShapeNone},
	{ID: FieldETX, Name: "ETX", Shape: ShapeNone},
	{ID: FieldSWVER, Name: "SWVER", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldSOURCE, Name: "SOURCE", Shape: ShapeScalar, Prim: UInt32},
	{ID: FieldBATTV, Name: "BATTV", Shape: ShapeScalar, Prim: UInt16, Scale: 1e-2},
	{ID: FieldPRESS, Name: "PRESS", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldTEMP, Name: "TEMP", Shape: ShapeScalar, Prim: Int16, Scale: 1e-2},
	{ID: FieldHUMID, Name: "HUMID", Shape: ShapeScalar, Prim: UInt16, Scale: 1e-2},
	{ID: FieldYEAR, Name: "YEAR", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldMONTH, Name: "MONTH", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldDAY, Name: "DAY", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldHOUR, Name: "HOUR", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldMIN, Name: "MIN", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldSEC, Name: "SEC", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldMILLIS, Name: "MILLIS", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldDATETIME, Name: "DATETIME", Shape: ShapeDateTime},
	{ID: FieldLAT, Name: "LAT", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldLON, Name: "LON", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldALT, Name: "ALT", Shape: ShapeScalar, Prim: Int32, Scale: 1e-3},
	{ID: FieldSPEED, Name: "SPEED", Shape: ShapeScalar, Prim: Int32},
	{ID: FieldHEAD, Name: "HEAD", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldSATS, Name: "SATS", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldPDOP, Name: "PDOP", Shape: ShapeScalar, Prim: UInt16, Scale: 1e-2},
	{ID: FieldFIX, Name: "FIX", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldGEOFSTAT, Name: "GEOFSTAT", Shape: ShapeArray, Prim: UInt8, Count: 3},
	{ID: FieldUSERVAL1, Name: "USERVAL1", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldUSERVAL2, Name: "USERVAL2", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldUSERVAL3, Name: "USERVAL3", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldUSERVAL4, Name: "USERVAL4", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldUSERVAL5, Name: "USERVAL5", Shape: ShapeScalar, Prim: UInt32},
	{ID: FieldUSERVAL6, Name: "USERVAL6", Shape: ShapeScalar, Prim: UInt32},
	{ID: FieldUSERVAL7, Name: "USERVAL7", Shape: ShapeScalar, Prim: Float32},
	{ID: FieldUSERVAL8, Name: "USERVAL8", Shape: ShapeScalar, Prim: Float32},
	{ID: FieldMOFIELDS, Name: "MOFIELDS", Shape: ShapeArray, Prim: UInt32, Count: 3},
	{ID: FieldFLAGS1, Name: "FLAGS1", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldFLAGS2, Name: "FLAGS2", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldDEST, Name: "DEST", Shape: ShapeScalar, Prim: UInt32},
	{ID: FieldHIPRESS, Name: "HIPRESS", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldLOPRESS, Name: "LOPRESS", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldHITEMP, Name: "HITEMP", Shape: ShapeScalar, Prim: Int16, Scale: 1e-2},
	{ID: FieldLOTEMP, Name: "LOTEMP", Shape: ShapeScalar, Prim: Int16, Scale: 1e-2},
	{ID: FieldHIHUMID, Name: "HIHUMID", Shape: ShapeScalar, Prim: UInt16, Scale: 1e-2},
	{ID: FieldLOHUMID, Name: "LOHUMID", Shape: ShapeScalar, Prim: UInt16, Scale: 1e-2},
	{ID: FieldGEOFNUM, Name: "GEOFNUM", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldGEOF1LAT, Name: "GEOF1LAT", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF1LON, Name: "GEOF1LON", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF1RAD, Name: "GEOF1RAD", Shape: ShapeScalar, Prim: UInt32, Scale: 1e-2},
	{ID: FieldGEOF2LAT, Name: "GEOF2LAT", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF2LON, Name: "GEOF2LON", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF2RAD, Name: "GEOF2RAD", Shape: ShapeScalar, Prim: UInt32, Scale: 1e-2},
	{ID: FieldGEOF3LAT, Name: "GEOF3LAT", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF3LON, Name: "GEOF3LON", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF3RAD, Name: "GEOF3RAD", Shape: ShapeScalar, Prim: UInt32, Scale: 1e-2},
	{ID: FieldGEOF4LAT, Name: "GEOF4LAT", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF4LON, Name: "GEOF4LON", Shape: ShapeScalar, Prim: Int32, Scale: 1e-7},
	{ID: FieldGEOF4RAD, Name: "GEOF4RAD", Shape: ShapeScalar, Prim: UInt32, Scale: 1e-2},
	{ID: FieldWAKEINT, Name: "WAKEINT", Shape: ShapeScalar, Prim: UInt32},
	{ID: FieldALARMINT, Name: "ALARMINT", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldTXINT, Name: "TXINT", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldLOWBATT, Name: "LOWBATT", Shape: ShapeScalar, Prim: UInt16, Scale: 1e-2},
	{ID: FieldDYNMODEL, Name: "DYNMODEL", Shape: ShapeScalar, Prim: UInt8},
	{ID: FieldRBHEAD, Name: "RBHEAD", Shape: ShapeBytes, Count: 4},
	{ID: FieldUSERFUNC1, Name: "USERFUNC1", Shape: ShapeNone},
	{ID: FieldUSERFUNC2, Name: "USERFUNC2", Shape: ShapeNone},
	{ID: FieldUSERFUNC3, Name: "USERFUNC3", Shape: ShapeNone},
	{ID: FieldUSERFUNC4, Name: "USERFUNC4", Shape: ShapeNone},
	{ID: FieldUSERFUNC5, Name: "USERFUNC5", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldUSERFUNC6, Name: "USERFUNC6", Shape: ShapeScalar, Prim: UInt16},
	{ID: FieldUSERFUNC7, Name: "USERFUNC7", Shape: ShapeScalar, Prim: UInt32},
	{ID: FieldUSERFUNC8, Name: "USERFUNC8", Shape: ShapeScalar, Prim: UInt32},
}

var (
	fieldsByID   map[FieldID]*Descriptor
	fieldsByName map[string]*Descriptor
)

func init() {
	fieldsByID = make(map[FieldID]*Descriptor, len(registry))
	fieldsByName = make(map[string]*Descriptor, len(registry))
	for i := range registry {
		d := &registry[i]
		fieldsByID[d.ID] = d
		fieldsByName[d.Name] = d
	}
}

// DescriptorOf looks up the field descriptor for a field ID.
func DescriptorOf(id FieldID) (*Descriptor, error) {
	d, ok := fieldsByID[id]
	if !ok {
		return nil, &UnknownFieldError{ID: id}
	}
	return d, nil
}

// DescriptorByName looks up the field descriptor for a field name.
func DescriptorByName(name string) (*Descriptor, error) {
	d, ok := fieldsByName[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return d, nil
}

// Fields returns the descriptors of all data fields in canonical order. The
// structural markers are not included.
func Fields() []*Descriptor {
	ds := make([]*Descriptor, 0, len(registry)-2)
	for i := range registry {
		d := &registry[i]
		if d.Marker() {
			continue
		}
		ds = append(ds, d)
	}
	return ds
}
