package sbd

import (
	"fmt"
	"time"
)

// Query helps to extract typed values from a message. All getters record the
// first encountered error; check Err after a chain of accesses.
type Query struct {
	m   *Message
	err *error
}

// Q creates a new Query for the specified message.
func Q(m *Message) *Query {
	var err error
	return &Query{m: m, err: &err}
}

// Err returns the first encountered error.
func (q *Query) Err() error {
	return *q.err
}

// Has returns whether a field is present.
func (q *Query) Has(name string) bool {
	return q.m.Has(name)
}

// Float64 gets a numeric field as float64. Scaled fields are stored as
// float64 already; unscaled primitives are widened.
func (q *Query) Float64(name string) float64 {
	if q.Err() != nil {
		return 0
	}
	v, ok := q.m.Get(name)
	if !ok {
		*q.err = fmt.Errorf("field not found: %s", name)
		return 0
	}
	f, ok := toFloat64(v)
	if !ok {
		*q.err = fmt.Errorf("field %s: not a numeric value: %T", name, v)
		return 0
	}
	return f
}

// Int gets an integer field as int.
func (q *Query) Int(name string) int {
	return int(q.Float64(name))
}

// Time gets a DATETIME field.
func (q *Query) Time(name string) time.Time {
	if q.Err() != nil {
		return time.Time{}
	}
	v, ok := q.m.Get(name)
	if !ok {
		*q.err = fmt.Errorf("field not found: %s", name)
		return time.Time{}
	}
	t, ok := v.(time.Time)
	if !ok {
		*q.err = fmt.Errorf("field %s: not a timestamp: %T", name, v)
		return time.Time{}
	}
	return t
}

// Bytes gets an opaque block field.
func (q *Query) Bytes(name string) []byte {
	if q.Err() != nil {
		return nil
	}
	v, ok := q.m.Get(name)
	if !ok {
		*q.err = fmt.Errorf("field not found: %s", name)
		return nil
	}
	b, ok := v.([]byte)
	if !ok {
		*q.err = fmt.Errorf("field %s: not a byte block: %T", name, v)
		return nil
	}
	return b
}
