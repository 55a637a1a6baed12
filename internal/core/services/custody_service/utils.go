package custody_service

import (
	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// Приоритет праздничных интервалов, перебивает обычные правила при предпросмотре
const holidayPriority = 10

var (
	dayStart = json_types.NewClockTime(0, 0)
	dayEnd   = json_types.NewClockTime(23, 59)

	defaultHandoverTime = json_types.NewClockTime(17, 0)
	defaultReturnTime   = json_types.NewClockTime(9, 0)

	twoTwoThreeSequence   = []int{2, 2, 3}
	defaultCustomSequence = []int{1, 1}
)

func validateConfig(config domain.PatternConfig) error {
	if config.ChildID == uuid.Nil {
		return ErrMissingChild
	}
	if config.StartDate.IsZero() || config.EndDate.IsZero() || config.EndDate.Before(config.StartDate) {
		return ErrInvalidDateRange
	}
	if !config.StartingParent.IsValid() {
		return ErrInvalidParent
	}
	return nil
}

func newInterval(ids out.IDGeneratorPort, config domain.PatternConfig, date json_types.Date, start, end json_types.ClockTime, parent domain.Parent, priority int) domain.CustodyInterval {
	return domain.CustodyInterval{
		ID:          ids.NewID(),
		ChildID:     config.ChildID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		AssignedTo:  parent,
		Priority:    priority,
		IsRecurring: true,
	}
}

// expandSequence удваивает последовательность с нечетным числом блоков,
// чтобы чередование родителей продолжалось через границу цикла
// Например [2,2,3] превращается в [2,2,3,2,2,3] - полный 14-дневный цикл
func expandSequence(sequence []int) []int {
	if len(sequence)%2 == 0 {
		return sequence
	}
	doubled := make([]int, 0, len(sequence)*2)
	doubled = append(doubled, sequence...)
	doubled = append(doubled, sequence...)
	return doubled
}

func sequenceCycleLength(sequence []int) int {
	total := 0
	for _, blockSize := range sequence {
		total += blockSize
	}
	return total
}

// ownerForCycleDay определяет владельца дня внутри цикла
// Блоки с четным индексом принадлежат startingParent, с нечетным - второму родителю
func ownerForCycleDay(sequence []int, cycleDay int, startingParent domain.Parent) domain.Parent {
	accumulated := 0
	for i, blockSize := range sequence {
		if cycleDay < accumulated+blockSize {
			if i%2 == 0 {
				return startingParent
			}
			return startingParent.Invert()
		}
		accumulated += blockSize
	}
	return startingParent
}

func patternLabel(patternType domain.PatternType) string {
	switch patternType {
	case domain.PatternTypeAlternatingWeekend:
		return "Alt. Weekend"
	case domain.PatternTypeTwoTwoThree:
		return "2-2-3 Rotation"
	case domain.PatternTypeCustomSequence:
		return "Custom Loop"
	default:
		return string(patternType)
	}
}
