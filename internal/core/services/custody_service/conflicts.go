package custody_service

import (
	"sort"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// resolveConflicts превращает пересекающиеся интервалы в непротиворечивое
// покрытие дня по принципу "художника": интервалы накладываются в порядке
// возрастания приоритета, каждый следующий вырезает свое время из уже
// уложенных. Более приоритетный интервал всегда целиком забирает свое время
// При равном приоритете побеждает более поздний во входном порядке
func resolveConflicts(ids out.IDGeneratorPort, intervals []domain.CustodyInterval) []domain.CustodyInterval {
	sorted := make([]domain.CustodyInterval, len(intervals))
	copy(sorted, intervals)

	// Стабильная сортировка сохраняет входной порядок при равном приоритете
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	resolved := make([]domain.CustodyInterval, 0, len(sorted))
	for _, candidate := range sorted {
		resolved = paintInterval(ids, resolved, candidate)
	}

	return IntervalSlice(resolved).quickSort()
}

// paintInterval вырезает время кандидата из уже уложенных интервалов того же дня
// От пересекающегося интервала остаются обрезки слева и справа от кандидата,
// обрезки нулевой ширины отбрасываются. Сам кандидат дописывается без изменений
func paintInterval(ids out.IDGeneratorPort, existing []domain.CustodyInterval, candidate domain.CustodyInterval) []domain.CustodyInterval {
	result := make([]domain.CustodyInterval, 0, len(existing)+1)

	for _, interval := range existing {
		if !candidate.Overlaps(interval) {
			result = append(result, interval)
			continue
		}

		if interval.StartTime.Minutes() < candidate.StartTime.Minutes() {
			left := interval
			left.ID = ids.NewID()
			left.EndTime = candidate.StartTime
			result = append(result, left)
		}

		if interval.EndTime.Minutes() > candidate.EndTime.Minutes() {
			right := interval
			right.ID = ids.NewID()
			right.StartTime = candidate.EndTime
			result = append(result, right)
		}
	}

	return append(result, candidate)
}
