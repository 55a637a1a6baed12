package json_types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-06")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-06", d.String())
	assert.Equal(t, time.Friday, d.Weekday())

	// RFC3339 input is accepted, the time of day is dropped
	d, err = ParseDate("2026-02-06T15:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-06", d.String())

	_, err = ParseDate("06.02.2026")
	assert.Error(t, err)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.February, 6)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-06"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d))
}

func TestDate_ZeroMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())
}

func TestDate_AddDaysAndComparisons(t *testing.T) {
	d := NewDate(2026, time.February, 27)

	next := d.AddDays(2)
	assert.Equal(t, "2026-03-01", next.String())
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.False(t, d.Equal(next))
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("17:00")
	require.NoError(t, err)
	assert.Equal(t, "17:00", ct.String())
	assert.Equal(t, 17*60, ct.Minutes())

	ct, err = ParseClockTime("09:30:15")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ct.String())

	_, err = ParseClockTime("5 pm")
	assert.Error(t, err)
}

func TestClockTime_MidnightIsNotZero(t *testing.T) {
	midnight := NewClockTime(0, 0)

	// Midnight is a real time of day, only the empty value is "unset"
	assert.False(t, midnight.IsZero())
	assert.True(t, ClockTime{}.IsZero())
	assert.Equal(t, 0, midnight.Minutes())
}

func TestClockTime_Before(t *testing.T) {
	morning := NewClockTime(9, 0)
	evening := NewClockTime(17, 0)

	assert.True(t, morning.Before(evening))
	assert.False(t, evening.Before(morning))
	assert.False(t, morning.Before(morning))
}

func TestClockTime_JSONRoundTrip(t *testing.T) {
	ct := NewClockTime(17, 0)

	data, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.Equal(t, `"17:00"`, string(data))

	var parsed ClockTime
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, ct.Minutes(), parsed.Minutes())

	data, err = json.Marshal(ClockTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
