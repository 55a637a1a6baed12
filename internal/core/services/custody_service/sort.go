package custody_service

import "github.com/famcal/custody-schedule-engine/internal/core/domain"

type IntervalSlice []domain.CustodyInterval

// quickSort сортирует интервалы по дате, затем по времени начала
func (s IntervalSlice) quickSort() IntervalSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	less := IntervalSlice{}
	equal := IntervalSlice{}
	greater := IntervalSlice{}

	for _, interval := range s {
		switch compareIntervals(interval, pivot) {
		case -1:
			less = append(less, interval)
		case 0:
			equal = append(equal, interval)
		default:
			greater = append(greater, interval)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}

func compareIntervals(a, b domain.CustodyInterval) int {
	if a.Date.Before(b.Date) {
		return -1
	}
	if a.Date.After(b.Date) {
		return 1
	}
	if a.StartTime.Minutes() < b.StartTime.Minutes() {
		return -1
	}
	if a.StartTime.Minutes() > b.StartTime.Minutes() {
		return 1
	}
	return 0
}
