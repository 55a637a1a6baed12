package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReorderDirection string

const (
	ReorderDirectionUp   ReorderDirection = "UP"
	ReorderDirectionDown ReorderDirection = "DOWN"
)

// Rule - правило расписания, владеет всеми интервалами с sourceRuleId == Rule.ID
// Приоритет выдается монотонно при создании и меняется только операцией reorder
type Rule struct {
	ID        uuid.UUID     `json:"id"`
	ChildID   uuid.UUID     `json:"childId"`
	Name      string        `json:"name"`
	Config    PatternConfig `json:"config"`
	Priority  int           `json:"priority"`
	IsOneTime bool          `json:"isOneTime"`
	CreatedAt time.Time     `json:"createdAt"`
}
