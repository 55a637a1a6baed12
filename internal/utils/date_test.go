package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

func TestStartAndEndOfMonth(t *testing.T) {
	d := json_types.NewDate(2026, time.February, 15)

	assert.Equal(t, "2026-02-01", StartOfMonth(d).String())
	assert.Equal(t, "2026-02-28", EndOfMonth(d).String())

	leap := json_types.NewDate(2028, time.February, 10)
	assert.Equal(t, "2028-02-29", EndOfMonth(leap).String())
}

func TestAddMonths(t *testing.T) {
	d := json_types.NewDate(2026, time.December, 15)
	assert.Equal(t, "2027-01-15", AddMonths(d, 1).String())
	assert.Equal(t, "2026-11-15", AddMonths(d, -1).String())
}

func TestDaysBetween(t *testing.T) {
	from := json_types.NewDate(2026, time.February, 1)
	to := json_types.NewDate(2026, time.March, 1)

	assert.Equal(t, 28, DaysBetween(from, to))
	assert.Equal(t, -28, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from))
}

func TestStartOfWeek_SundayBased(t *testing.T) {
	// 2026-02-06 is a Friday, its week starts on Sunday 2026-02-01
	friday := json_types.NewDate(2026, time.February, 6)
	assert.Equal(t, "2026-02-01", StartOfWeek(friday).String())

	// A Sunday is its own week start
	sunday := json_types.NewDate(2026, time.February, 1)
	assert.Equal(t, "2026-02-01", StartOfWeek(sunday).String())
}

func TestCalendarWeeksBetween(t *testing.T) {
	// Same calendar week, even across a weekday gap
	assert.Equal(t, 0, CalendarWeeksBetween(
		json_types.NewDate(2026, time.February, 1),
		json_types.NewDate(2026, time.February, 7)))

	// Saturday to Sunday crosses exactly one week boundary
	assert.Equal(t, 1, CalendarWeeksBetween(
		json_types.NewDate(2026, time.February, 7),
		json_types.NewDate(2026, time.February, 8)))

	assert.Equal(t, 5, CalendarWeeksBetween(
		json_types.NewDate(2026, time.January, 2),
		json_types.NewDate(2026, time.February, 1)))
}
