package domain

import (
	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

type PatternType string

const (
	PatternTypeWeekly             PatternType = "WEEKLY"
	PatternTypeWeekend            PatternType = "WEEKEND"
	PatternTypeAlternatingWeekend PatternType = "ALTERNATING_WEEKEND"
	PatternTypeTwoTwoThree        PatternType = "TWO_TWO_THREE"
	PatternTypeCustomSequence     PatternType = "CUSTOM_SEQUENCE"
	PatternTypeHoliday            PatternType = "HOLIDAY"
)

// PatternConfig - декларативное описание повторяющегося паттерна опеки
// Диапазон дат включительный с обеих сторон
type PatternConfig struct {
	ChildID        uuid.UUID            `json:"childId"`
	StartDate      json_types.Date      `json:"startDate"`
	EndDate        json_types.Date      `json:"endDate"`
	Type           PatternType          `json:"type"`
	StartingParent Parent               `json:"startingParent"`
	HandoverTime   json_types.ClockTime `json:"handoverTime"`
	Sequence       []int                `json:"sequence,omitempty"`
	Holidays       []json_types.Date    `json:"holidays,omitempty"`
	IsOneTime      bool                 `json:"isOneTime"`
}

// Clone возвращает копию конфигурации с независимыми слайсами
func (c PatternConfig) Clone() PatternConfig {
	cloned := c
	if c.Sequence != nil {
		cloned.Sequence = append([]int(nil), c.Sequence...)
	}
	if c.Holidays != nil {
		cloned.Holidays = append([]json_types.Date(nil), c.Holidays...)
	}
	return cloned
}
