package custody_service

import (
	"time"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
	"github.com/famcal/custody-schedule-engine/internal/utils"
)

// Стратегии генерации - чистые функции, детерминированные с точностью
// до выдаваемых идентификаторов
// Все стратегии обходят каждую дату от startDate до endDate включительно

type daySegment struct {
	start  json_types.ClockTime
	end    json_types.ClockTime
	parent domain.Parent
}

// generateAlternatingWeekend - 14-дневный цикл, привязанный к startDate
// Предполагается, что startDate выровнен на пятницу
// Первая неделя цикла принадлежит "выходному" родителю: пятница делится
// в момент передачи, суббота и воскресенье целиком его, понедельник делится
// в момент возврата. Вторая неделя целиком у "будничного" родителя
func generateAlternatingWeekend(ids out.IDGeneratorPort, config domain.PatternConfig) []domain.CustodyInterval {
	intervals := make([]domain.CustodyInterval, 0)

	weekendParent := config.StartingParent
	weekdayParent := config.StartingParent.Invert()

	handoverTime := defaultHandoverTime
	returnTime := defaultReturnTime
	if !config.HandoverTime.IsZero() {
		handoverTime = config.HandoverTime
		returnTime = config.HandoverTime
	}

	for date := config.StartDate; !date.After(config.EndDate); date = date.AddDays(1) {
		cycleDay := utils.DaysBetween(config.StartDate, date) % 14
		isFirstWeek := cycleDay < 7

		segments := make([]daySegment, 0, 2)
		if isFirstWeek {
			switch date.Weekday() {
			case time.Friday:
				segments = append(segments,
					daySegment{dayStart, handoverTime, weekdayParent},
					daySegment{handoverTime, dayEnd, weekendParent})
			case time.Saturday, time.Sunday:
				segments = append(segments, daySegment{dayStart, dayEnd, weekendParent})
			case time.Monday:
				// День возврата
				segments = append(segments,
					daySegment{dayStart, returnTime, weekendParent},
					daySegment{returnTime, dayEnd, weekdayParent})
			default:
				segments = append(segments, daySegment{dayStart, dayEnd, weekdayParent})
			}
		} else {
			// Вторая неделя без выходных у weekendParent, разбиений нет
			segments = append(segments, daySegment{dayStart, dayEnd, weekdayParent})
		}

		for _, segment := range segments {
			intervals = append(intervals, newInterval(ids, config, date, segment.start, segment.end, segment.parent, 0))
		}
	}

	return intervals
}

// generateSequence - циклическое чередование блоков полных дней
// Длина цикла равна сумме последовательности, нечетные последовательности
// предварительно удваиваются, см. expandSequence
func generateSequence(ids out.IDGeneratorPort, config domain.PatternConfig, sequence []int) []domain.CustodyInterval {
	intervals := make([]domain.CustodyInterval, 0)

	cycle := expandSequence(sequence)
	cycleLength := sequenceCycleLength(cycle)
	if cycleLength <= 0 {
		return intervals
	}

	for date := config.StartDate; !date.After(config.EndDate); date = date.AddDays(1) {
		cycleDay := utils.DaysBetween(config.StartDate, date) % cycleLength
		owner := ownerForCycleDay(cycle, cycleDay, config.StartingParent)
		intervals = append(intervals, newInterval(ids, config, date, dayStart, dayEnd, owner, 0))
	}

	return intervals
}

// generateHoliday - точечные переопределения с повышенным приоритетом
// Если список праздников пуст, закрывается весь диапазон
func generateHoliday(ids out.IDGeneratorPort, config domain.PatternConfig) []domain.CustodyInterval {
	intervals := make([]domain.CustodyInterval, 0)

	if len(config.Holidays) > 0 {
		for _, date := range config.Holidays {
			intervals = append(intervals, newInterval(ids, config, date, dayStart, dayEnd, config.StartingParent, holidayPriority))
		}
		return intervals
	}

	for date := config.StartDate; !date.After(config.EndDate); date = date.AddDays(1) {
		intervals = append(intervals, newInterval(ids, config, date, dayStart, dayEnd, config.StartingParent, holidayPriority))
	}

	return intervals
}

// generateWeekly - стабильный паттерн, родитель не чередуется между циклами
func generateWeekly(ids out.IDGeneratorPort, config domain.PatternConfig) []domain.CustodyInterval {
	intervals := make([]domain.CustodyInterval, 0)

	for date := config.StartDate; !date.After(config.EndDate); date = date.AddDays(1) {
		intervals = append(intervals, newInterval(ids, config, date, dayStart, dayEnd, config.StartingParent, 0))
	}

	return intervals
}

// generateWeekend - стабильный паттерн, только субботы и воскресенья
func generateWeekend(ids out.IDGeneratorPort, config domain.PatternConfig) []domain.CustodyInterval {
	intervals := make([]domain.CustodyInterval, 0)

	for date := config.StartDate; !date.After(config.EndDate); date = date.AddDays(1) {
		weekday := date.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			continue
		}
		intervals = append(intervals, newInterval(ids, config, date, dayStart, dayEnd, config.StartingParent, 0))
	}

	return intervals
}
