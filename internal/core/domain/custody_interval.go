package domain

import (
	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

// CustodyInterval - непрерывный отрезок времени в пределах одного дня,
// закрепленный за одним родителем
// SourceRuleID == uuid.Nil означает запись, внесенную вручную, такие записи
// никогда не удаляются каскадно вместе с правилом
type CustodyInterval struct {
	ID           uuid.UUID            `json:"id"`
	ChildID      uuid.UUID            `json:"childId"`
	Date         json_types.Date      `json:"date"`
	StartTime    json_types.ClockTime `json:"startTime"`
	EndTime      json_types.ClockTime `json:"endTime"`
	AssignedTo   Parent               `json:"assignedTo"`
	Priority     int                  `json:"priority"`
	SourceRuleID uuid.UUID            `json:"sourceRuleId,omitempty"`
	IsRecurring  bool                 `json:"isRecurring"`
}

func (c CustodyInterval) IsManual() bool {
	return c.SourceRuleID == uuid.Nil
}

// Overlaps проверяет пересечение по времени в пределах одного дня
func (c CustodyInterval) Overlaps(other CustodyInterval) bool {
	if !c.Date.Equal(other.Date) {
		return false
	}
	return c.StartTime.Minutes() < other.EndTime.Minutes() && c.EndTime.Minutes() > other.StartTime.Minutes()
}
