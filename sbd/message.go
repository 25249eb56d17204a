package sbd

import (
	"fmt"
	"strings"
	"time"
)

// Message is the decoded form of one wire message: an insertion-ordered
// mapping from field name to value. Depending on the field, a value is nil
// (zero-length trigger field), one of the primitive types uint8, uint16,
// uint32, int16, int32 or float32, a float64 (scaled logical value), a
// time.Time (DATETIME), a []byte (opaque block) or a typed slice (array
// field). A Message is a snapshot of exactly one message; Decode and Encode
// never share state between calls.
type Message struct {
	names  []string
	values map[string]interface{}
}

// NewMessage creates an empty message.
func NewMessage() *Message {
	return &Message{values: make(map[string]interface{})}
}

// Set stores a value under a field name. The name must belong to a data
// field of the message format; unknown names fail with an UnknownFieldError,
// the structural markers are rejected as well. Numeric values are accepted
// as any integer or float type and are converted to the field's value type:
// float64 for scaled fields, the field's primitive type otherwise. Array
// fields take a numeric slice, DATETIME takes a time.Time, opaque block
// fields take a []byte or nil. The element count of array values is checked
// by Encode, not here.
func (m *Message) Set(name string, value interface{}) error {
	d, err := DescriptorByName(name)
	if err != nil {
		return err
	}
	if d.Marker() {
		return fmt.Errorf("field %s is a structural marker", name)
	}
	v, err := normalize(d, value)
	if err != nil {
		return err
	}
	m.put(name, v)
	return nil
}

// put stores a value without validation. The decoder uses it directly, as
// decoded values already have their final type.
func (m *Message) put(name string, value interface{}) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get returns the value stored under a field name.
func (m *Message) Get(name string) (interface{}, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Has returns whether a field is present.
func (m *Message) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Names returns the field names in insertion order.
func (m *Message) Names() []string {
	ns := make([]string, len(m.names))
	copy(ns, m.names)
	return ns
}

// Len returns the number of fields.
func (m *Message) Len() int {
	return len(m.names)
}

// String renders the message for diagnostic output.
func (m *Message) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, n := range m.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", n, m.values[n])
	}
	b.WriteString("}")
	return b.String()
}

func normalize(d *Descriptor, value interface{}) (interface{}, error) {
	switch d.Shape {
	case ShapeNone:
		// trigger field, any supplied value is irrelevant
		return nil, nil
	case ShapeBytes:
		if value == nil {
			return nil, nil
		}
		b, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("field %s: []byte expected, got %T", d.Name, value)
		}
		c := make([]byte, len(b))
		copy(c, b)
		return c, nil
	case ShapeDateTime:
		t, ok := value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("field %s: time.Time expected, got %T", d.Name, value)
		}
		return t, nil
	case ShapeScalar:
		f, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("field %s: numeric value expected, got %T", d.Name, value)
		}
		if d.Scale != 0 {
			return f, nil
		}
		return castValue(d.Prim, f), nil
	case ShapeArray:
		fs, ok := toFloat64Slice(value)
		if !ok {
			return nil, fmt.Errorf("field %s: numeric slice expected, got %T", d.Name, value)
		}
		if d.Scale != 0 {
			return fs, nil
		}
		return castSlice(d.Prim, fs), nil
	}
	panic("sbd: invalid shape")
}
