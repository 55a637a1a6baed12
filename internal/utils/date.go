package utils

import (
	"time"

	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

// StartOfMonth возвращает первое число месяца указанной даты
func StartOfMonth(d json_types.Date) json_types.Date {
	t := d.Date
	return json_types.NewDate(t.Year(), t.Month(), 1)
}

// EndOfMonth возвращает последнее число месяца указанной даты
func EndOfMonth(d json_types.Date) json_types.Date {
	t := d.Date
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	last := firstOfNext.AddDate(0, 0, -1)
	return json_types.NewDate(last.Year(), last.Month(), last.Day())
}

// AddMonths сдвигает дату на указанное число месяцев
func AddMonths(d json_types.Date, months int) json_types.Date {
	t := d.Date.AddDate(0, months, 0)
	return json_types.NewDate(t.Year(), t.Month(), t.Day())
}

// DaysBetween возвращает число полных дней между двумя датами, to - from
func DaysBetween(from, to json_types.Date) int {
	return int(to.Date.Sub(from.Date).Hours() / 24)
}

// StartOfWeek возвращает начало календарной недели, неделя начинается с воскресенья
func StartOfWeek(d json_types.Date) json_types.Date {
	return d.AddDays(-int(d.Weekday()))
}

// CalendarWeeksBetween возвращает число границ календарных недель между датами
// Считается как разница начал недель, а не полных 7-дневных периодов
func CalendarWeeksBetween(from, to json_types.Date) int {
	return DaysBetween(StartOfWeek(from), StartOfWeek(to)) / 7
}
