package custody_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
	"github.com/famcal/custody-schedule-engine/internal/utils"
)

// SimulatePropagation строит план переноса правил на следующий месяц
// План ничего не сохраняет, выполнение - отдельный явный шаг через
// ExecutePropagation, поэтому частичный сбой выполнения затрагивает
// только оставшиеся конфигурации
func (s *CustodyService) SimulatePropagation(ctx context.Context, childID uuid.UUID, referenceMonth json_types.Date) (*domain.PropagationResult, error) {
	if referenceMonth.IsZero() {
		return nil, ErrInvalidDateRange
	}

	currentMonthStart := utils.StartOfMonth(referenceMonth)
	currentMonthEnd := utils.EndOfMonth(referenceMonth)
	nextMonthStart := utils.StartOfMonth(utils.AddMonths(referenceMonth, 1))
	nextMonthEnd := utils.EndOfMonth(nextMonthStart)

	allRules, err := s.ruleStore.FindAllByChildID(ctx, childID)
	if err != nil {
		s.logger.Error("propagation.simulate.rules.fetch_failed", out.LogFields{
			"childId": childID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("propagation.simulate.rules.fetch_failed: %w", err)
	}

	result := &domain.PropagationResult{
		CanProceed:    true,
		RulesToCreate: make([]domain.PatternConfig, 0),
		SkippedRules:  make([]domain.SkippedRule, 0),
	}

	for _, rule := range allRules {
		// Правило активно, если его диапазон пересекается с опорным месяцем
		if rule.Config.StartDate.After(currentMonthEnd) || rule.Config.EndDate.Before(currentMonthStart) {
			continue
		}

		if rule.IsOneTime {
			result.SkippedRules = append(result.SkippedRules, domain.SkippedRule{
				RuleName: rule.Name,
				Reason:   domain.SkipReasonOneTime,
			})
			continue
		}

		nextConfig, err := nextMonthConfig(rule, nextMonthStart, nextMonthEnd)
		if err != nil {
			// Ошибка арифметики дат не роняет весь план, правило просто пропускается
			s.logger.Warn("propagation.simulate.rule.skipped", out.LogFields{
				"ruleId": rule.ID,
				"error":  err.Error(),
			})
			result.SkippedRules = append(result.SkippedRules, domain.SkippedRule{
				RuleName: rule.Name,
				Reason:   domain.SkipReasonInvalidDate,
			})
			continue
		}

		result.RulesToCreate = append(result.RulesToCreate, nextConfig)
	}

	s.logger.Info("propagation.simulate.finished", out.LogFields{
		"childId":      childID,
		"toCreate":     len(result.RulesToCreate),
		"skippedCount": len(result.SkippedRules),
	})

	return result, nil
}

// ExecutePropagation прогоняет конфигурации плана через обычное создание правил
// Сбой одной конфигурации не останавливает остальные
func (s *CustodyService) ExecutePropagation(ctx context.Context, configs []domain.PatternConfig) (int, error) {
	created := 0

	for _, config := range configs {
		if _, err := s.CreateRule(ctx, config); err != nil {
			s.logger.Error("propagation.execute.create_failed", out.LogFields{
				"childId": config.ChildID,
				"type":    config.Type,
				"error":   err.Error(),
			})
			continue
		}
		created++
	}

	s.logger.Info("propagation.execute.finished", out.LogFields{
		"createdCount": created,
		"totalCount":   len(configs),
	})

	return created, nil
}

// nextMonthConfig клонирует конфигурацию правила на следующий месяц
// с коррекцией фазы цикла, чтобы чередование продолжалось бесшовно
func nextMonthConfig(rule domain.Rule, nextStart, nextEnd json_types.Date) (domain.PatternConfig, error) {
	original := rule.Config
	if original.StartDate.IsZero() {
		return domain.PatternConfig{}, fmt.Errorf("rule %q has no start date", rule.Name)
	}

	config := original.Clone()
	config.StartDate = nextStart
	config.EndDate = nextEnd
	// Конкретные даты праздников автоматически не переносятся
	config.Holidays = nil

	switch config.Type {
	case domain.PatternTypeAlternatingWeekend:
		// Пересечено нечетное число границ календарных недель - родитель меняется
		if utils.CalendarWeeksBetween(original.StartDate, nextStart)%2 != 0 {
			config.StartingParent = config.StartingParent.Invert()
		}

	case domain.PatternTypeTwoTwoThree:
		sequence := original.Sequence
		if len(sequence) == 0 {
			sequence = twoTwoThreeSequence
		}
		applySequencePhase(&config, original, sequence, nextStart)

	case domain.PatternTypeCustomSequence:
		// Без последовательности фазу скорректировать нечем
		applySequencePhase(&config, original, original.Sequence, nextStart)

	case domain.PatternTypeHoliday, domain.PatternTypeWeekly, domain.PatternTypeWeekend:
		// Стабильные паттерны повторяются без коррекции фазы

	default:
	}

	return config, nil
}

// applySequencePhase вычисляет позицию нового начала внутри цикла
// и меняет родителя, если она попадает в блок с нечетным индексом
func applySequencePhase(config *domain.PatternConfig, original domain.PatternConfig, sequence []int, nextStart json_types.Date) {
	// Фаза считается по тому же развернутому циклу, что и генерация
	cycle := expandSequence(sequence)
	cycleLength := sequenceCycleLength(cycle)
	if len(cycle) == 0 || cycleLength == 0 {
		return
	}

	daysDiff := utils.DaysBetween(original.StartDate, nextStart)
	positionInCycle := ((daysDiff % cycleLength) + cycleLength) % cycleLength

	accumulated := 0
	segmentIndex := 0
	for i, blockSize := range cycle {
		accumulated += blockSize
		if positionInCycle < accumulated {
			segmentIndex = i
			break
		}
	}

	if segmentIndex%2 != 0 {
		config.StartingParent = config.StartingParent.Invert()
	}
}
