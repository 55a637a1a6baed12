package custody_service

import (
	"github.com/famcal/custody-schedule-engine/internal/core/domain"
)

// generatePattern маршрутизирует конфигурацию на стратегию строго по типу
// Неизвестный тип дает пустой список, а не ошибку - вызывающие определяют
// "ничего не сгенерировано" по пустому слайсу
func (s *CustodyService) generatePattern(config domain.PatternConfig) []domain.CustodyInterval {
	switch config.Type {
	case domain.PatternTypeAlternatingWeekend:
		return generateAlternatingWeekend(s.idGen, config)
	case domain.PatternTypeTwoTwoThree:
		return generateSequence(s.idGen, config, twoTwoThreeSequence)
	case domain.PatternTypeCustomSequence:
		sequence := config.Sequence
		if len(sequence) == 0 {
			sequence = defaultCustomSequence
		}
		return generateSequence(s.idGen, config, sequence)
	case domain.PatternTypeHoliday:
		return generateHoliday(s.idGen, config)
	case domain.PatternTypeWeekly:
		return generateWeekly(s.idGen, config)
	case domain.PatternTypeWeekend:
		return generateWeekend(s.idGen, config)
	default:
		return make([]domain.CustodyInterval, 0)
	}
}
