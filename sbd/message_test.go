package sbd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageSetUnknownField(t *testing.T) {
	m := NewMessage()
	err := m.Set("BOGUS", 1)
	var uerr *UnknownFieldError
	if !errors.As(err, &uerr) {
		t.Fatalf("Expected UnknownFieldError, got: %v", err)
	}
	if uerr.Name != "BOGUS" {
		t.Errorf("Expected name BOGUS, got: %s", uerr.Name)
	}
}

func TestMessageSetMarker(t *testing.T) {
	m := NewMessage()
	if err := m.Set("STX", nil); err == nil {
		t.Error("Expected error for structural marker")
	}
	if err := m.Set("ETX", nil); err == nil {
		t.Error("Expected error for structural marker")
	}
}

func TestMessageSetInvalidType(t *testing.T) {
	m := NewMessage()
	if err := m.Set("LAT", "not a number"); err == nil {
		t.Error("Expected error for non-numeric value")
	}
	if err := m.Set("DATETIME", 12345); err == nil {
		t.Error("Expected error for non-timestamp value")
	}
	if err := m.Set("GEOFSTAT", 7); err == nil {
		t.Error("Expected error for non-slice value")
	}
}

func TestMessageSetNormalization(t *testing.T) {
	m := NewMessage()
	assert.NoError(t, m.Set("SWVER", 7))
	v, _ := m.Get("SWVER")
	assert.Equal(t, uint8(7), v)

	// scaled fields are stored as their logical float64 value
	assert.NoError(t, m.Set("BATTV", 4))
	v, _ = m.Get("BATTV")
	assert.Equal(t, float64(4), v)

	// overwriting keeps the insertion position
	assert.NoError(t, m.Set("SWVER", 8))
	assert.Equal(t, []string{"SWVER", "BATTV"}, m.Names())
	assert.Equal(t, 2, m.Len())
}

func TestMessageOrder(t *testing.T) {
	m := NewMessage()
	assert.NoError(t, m.Set("LON", 1.0))
	assert.NoError(t, m.Set("LAT", 2.0))
	assert.NoError(t, m.Set("ALT", 3.0))
	assert.Equal(t, []string{"LON", "LAT", "ALT"}, m.Names())
}

func TestQuery(t *testing.T) {
	when := time.Date(2022, 8, 20, 6, 30, 0, 0, time.UTC)
	m := NewMessage()
	assert.NoError(t, m.Set("LAT", 37.4219))
	assert.NoError(t, m.Set("SATS", 9))
	assert.NoError(t, m.Set("DATETIME", when))

	q := Q(m)
	assert.InDelta(t, 37.4219, q.Float64("LAT"), 1e-12)
	assert.Equal(t, 9, q.Int("SATS"))
	assert.Equal(t, when, q.Time("DATETIME"))
	assert.True(t, q.Has("LAT"))
	assert.False(t, q.Has("LON"))
	assert.NoError(t, q.Err())

	// a missing field sets the error and subsequent getters return zero
	// values
	assert.Equal(t, 0.0, q.Float64("LON"))
	assert.Error(t, q.Err())
	assert.Equal(t, time.Time{}, q.Time("DATETIME"))
}

func TestQueryTypeError(t *testing.T) {
	m := NewMessage()
	assert.NoError(t, m.Set("DATETIME", time.Now()))
	q := Q(m)
	q.Float64("DATETIME")
	assert.Error(t, q.Err())
}
