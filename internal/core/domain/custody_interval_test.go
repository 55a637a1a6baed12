package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

func interval(day, startHour, endHour int) CustodyInterval {
	return CustodyInterval{
		ID:        uuid.New(),
		Date:      json_types.NewDate(2026, time.February, day),
		StartTime: json_types.NewClockTime(startHour, 0),
		EndTime:   json_types.NewClockTime(endHour, 0),
	}
}

func TestCustodyInterval_Overlaps(t *testing.T) {
	base := interval(10, 9, 17)

	assert.True(t, base.Overlaps(interval(10, 16, 20)))
	assert.True(t, base.Overlaps(interval(10, 0, 10)))
	assert.True(t, base.Overlaps(interval(10, 10, 12)))

	// Touching boundaries do not overlap
	assert.False(t, base.Overlaps(interval(10, 17, 20)))
	assert.False(t, base.Overlaps(interval(10, 0, 9)))

	// Different days never overlap
	assert.False(t, base.Overlaps(interval(11, 9, 17)))
}

func TestCustodyInterval_IsManual(t *testing.T) {
	manual := interval(10, 9, 17)
	assert.True(t, manual.IsManual())

	owned := manual
	owned.SourceRuleID = uuid.New()
	assert.False(t, owned.IsManual())
}

func TestParent_Invert(t *testing.T) {
	assert.Equal(t, ParentDad, ParentMom.Invert())
	assert.Equal(t, ParentMom, ParentDad.Invert())

	assert.True(t, ParentMom.IsValid())
	assert.True(t, ParentDad.IsValid())
	assert.False(t, Parent("AUNT").IsValid())
}

func TestPatternConfig_CloneIsIndependent(t *testing.T) {
	original := PatternConfig{
		ChildID:        uuid.New(),
		StartDate:      json_types.NewDate(2026, time.February, 1),
		EndDate:        json_types.NewDate(2026, time.February, 28),
		Type:           PatternTypeCustomSequence,
		StartingParent: ParentMom,
		Sequence:       []int{2, 2, 3},
		Holidays:       []json_types.Date{json_types.NewDate(2026, time.February, 14)},
	}

	cloned := original.Clone()
	cloned.Sequence[0] = 9
	cloned.Holidays[0] = json_types.NewDate(2026, time.March, 8)

	assert.Equal(t, 2, original.Sequence[0])
	assert.Equal(t, "2026-02-14", original.Holidays[0].String())
}
