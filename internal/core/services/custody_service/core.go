package custody_service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

type CustodyService struct {
	ruleStore     out.RuleStorePort
	intervalStore out.IntervalStorePort
	cachePort     out.CachePort
	idGen         out.IDGeneratorPort
	logger        out.LoggerPort

	// Мутации сериализуются по ребенку, иначе два конкурентных createRule
	// прочитают один и тот же максимум приоритета
	childLocks sync.Map
}

func NewCustodyService(
	ruleStore out.RuleStorePort,
	intervalStore out.IntervalStorePort,
	cachePort out.CachePort,
	idGen out.IDGeneratorPort,
	logger out.LoggerPort,
) *CustodyService {
	return &CustodyService{
		ruleStore:     ruleStore,
		intervalStore: intervalStore,
		cachePort:     cachePort,
		idGen:         idGen,
		logger:        logger.WithModule("CustodyService"),
	}
}

func (s *CustodyService) lockChild(childID uuid.UUID) func() {
	value, _ := s.childLocks.LoadOrStore(childID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *CustodyService) GeneratePreview(ctx context.Context, config domain.PatternConfig) ([]domain.CustodyInterval, error) {
	if err := validateConfig(config); err != nil {
		s.logger.Warn("custody.preview.invalid_config", out.LogFields{
			"childId": config.ChildID,
			"error":   err.Error(),
		})
		return nil, err
	}

	intervals := s.generatePattern(config)

	s.logger.Debug("custody.preview.generated", out.LogFields{
		"childId":        config.ChildID,
		"type":           config.Type,
		"intervalsCount": len(intervals),
	})

	return intervals, nil
}

func (s *CustodyService) CreateRule(ctx context.Context, config domain.PatternConfig) (*domain.Rule, error) {
	if err := validateConfig(config); err != nil {
		s.logger.Warn("rules.create.invalid_config", out.LogFields{
			"childId": config.ChildID,
			"error":   err.Error(),
		})
		return nil, err
	}

	unlock := s.lockChild(config.ChildID)
	defer unlock()

	existingRules, err := s.ruleStore.FindAllByChildID(ctx, config.ChildID)
	if err != nil {
		s.logger.Error("rules.create.rules.fetch_failed", out.LogFields{
			"childId": config.ChildID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("rules.create.rules.fetch_failed: %w", err)
	}

	// Приоритет выдается монотонно: максимум по ребенку плюс один
	maxPriority := 0
	for _, rule := range existingRules {
		if rule.Priority > maxPriority {
			maxPriority = rule.Priority
		}
	}

	rule := &domain.Rule{
		ID:        s.idGen.NewID(),
		ChildID:   config.ChildID,
		Name:      fmt.Sprintf("%s (%s)", patternLabel(config.Type), config.StartDate),
		Config:    config.Clone(),
		Priority:  maxPriority + 1,
		IsOneTime: config.IsOneTime,
		CreatedAt: time.Now(),
	}

	intervals := s.generatePattern(config)
	for i := range intervals {
		intervals[i].SourceRuleID = rule.ID
		intervals[i].Priority = rule.Priority
	}

	if err := s.ruleStore.Save(ctx, rule); err != nil {
		s.logger.Error("rules.create.rule.save_failed", out.LogFields{
			"ruleId": rule.ID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("rules.create.rule.save_failed: %w", err)
	}

	if err := s.intervalStore.Save(ctx, intervals); err != nil {
		s.logger.Error("rules.create.intervals.save_failed", out.LogFields{
			"ruleId": rule.ID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("rules.create.intervals.save_failed: %w", err)
	}

	s.invalidateChildCalendar(ctx, config.ChildID)

	s.logger.Info("rules.create.finished", out.LogFields{
		"ruleId":         rule.ID,
		"childId":        rule.ChildID,
		"priority":       rule.Priority,
		"intervalsCount": len(intervals),
	})

	return rule, nil
}

func (s *CustodyService) DeleteRule(ctx context.Context, ruleID uuid.UUID) error {
	rule, err := s.ruleStore.FindByID(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("rules.delete.rule.fetch_failed: %w", err)
	}

	// Сначала каскадно удаляются интервалы правила, ручные записи
	// без sourceRuleId хранилище не трогает
	if err := s.intervalStore.DeleteByRuleID(ctx, ruleID); err != nil {
		s.logger.Error("rules.delete.intervals.delete_failed", out.LogFields{
			"ruleId": ruleID,
			"error":  err.Error(),
		})
		return fmt.Errorf("rules.delete.intervals.delete_failed: %w", err)
	}

	if err := s.ruleStore.Delete(ctx, ruleID); err != nil {
		s.logger.Error("rules.delete.rule.delete_failed", out.LogFields{
			"ruleId": ruleID,
			"error":  err.Error(),
		})
		return fmt.Errorf("rules.delete.rule.delete_failed: %w", err)
	}

	// Удаление несуществующего правила идемпотентно, кэш чистить не нужно
	if rule != nil {
		s.invalidateChildCalendar(ctx, rule.ChildID)
	}

	s.logger.Info("rules.delete.finished", out.LogFields{
		"ruleId": ruleID,
	})

	return nil
}

func (s *CustodyService) ReorderRule(ctx context.Context, ruleID uuid.UUID, direction domain.ReorderDirection) error {
	rule, err := s.ruleStore.FindByID(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("rules.reorder.rule.fetch_failed: %w", err)
	}
	if rule == nil {
		return ErrRuleNotFound
	}

	unlock := s.lockChild(rule.ChildID)
	defer unlock()

	allRules, err := s.ruleStore.FindAllByChildID(ctx, rule.ChildID)
	if err != nil {
		return fmt.Errorf("rules.reorder.rules.fetch_failed: %w", err)
	}

	sort.SliceStable(allRules, func(i, j int) bool {
		return allRules[i].Priority < allRules[j].Priority
	})

	currentIndex := -1
	for i := range allRules {
		if allRules[i].ID == ruleID {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return ErrRuleNotFound
	}

	// UP повышает приоритет, в отсортированном по возрастанию списке
	// это обмен со следующим соседом
	swapWithIndex := currentIndex - 1
	if direction == domain.ReorderDirectionUp {
		swapWithIndex = currentIndex + 1
	}

	// Крайние позиции двигать некуда
	if swapWithIndex < 0 || swapWithIndex >= len(allRules) {
		s.logger.Debug("rules.reorder.noop", out.LogFields{
			"ruleId":    ruleID,
			"direction": direction,
		})
		return nil
	}

	current := allRules[currentIndex]
	other := allRules[swapWithIndex]
	current.Priority, other.Priority = other.Priority, current.Priority

	if err := s.ruleStore.Save(ctx, &current); err != nil {
		return fmt.Errorf("rules.reorder.rule.save_failed: %w", err)
	}
	if err := s.ruleStore.Save(ctx, &other); err != nil {
		return fmt.Errorf("rules.reorder.rule.save_failed: %w", err)
	}

	// Интервалы обоих правил обязаны нести новый приоритет своего правила
	if err := s.intervalStore.UpdatePriorityByRuleID(ctx, current.ID, current.Priority); err != nil {
		return fmt.Errorf("rules.reorder.intervals.update_failed: %w", err)
	}
	if err := s.intervalStore.UpdatePriorityByRuleID(ctx, other.ID, other.Priority); err != nil {
		return fmt.Errorf("rules.reorder.intervals.update_failed: %w", err)
	}

	s.invalidateChildCalendar(ctx, rule.ChildID)

	s.logger.Info("rules.reorder.finished", out.LogFields{
		"ruleId":      current.ID,
		"newPriority": current.Priority,
		"swappedWith": other.ID,
	})

	return nil
}

func (s *CustodyService) GetRulesByChild(ctx context.Context, childID uuid.UUID) ([]domain.Rule, error) {
	rules, err := s.ruleStore.FindAllByChildID(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("rules.list.fetch_failed: %w", err)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})

	return rules, nil
}

// CheckConflicts - информационная проверка перед созданием правила
// Возвращает правила, чьи интервалы пересеклись бы с новой конфигурацией
// Создание при конфликте все равно разрешено, стек приоритетов разрулит пересечения
func (s *CustodyService) CheckConflicts(ctx context.Context, config domain.PatternConfig, excludeRuleID uuid.UUID) ([]domain.Rule, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	newIntervals := s.generatePattern(config)
	if len(newIntervals) == 0 {
		return make([]domain.Rule, 0), nil
	}

	// Диапазон берется по сгенерированным интервалам, а не по конфигурации:
	// праздничные даты могут выходить за пределы startDate-endDate
	minDate := newIntervals[0].Date
	maxDate := newIntervals[0].Date
	for _, interval := range newIntervals {
		if interval.Date.Before(minDate) {
			minDate = interval.Date
		}
		if interval.Date.After(maxDate) {
			maxDate = interval.Date
		}
	}

	existing, err := s.intervalStore.FindByDateRange(ctx, config.ChildID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("custody.conflicts.intervals.fetch_failed: %w", err)
	}

	conflictingRuleIDs := make(map[uuid.UUID]struct{})
	for _, candidate := range newIntervals {
		for _, existingInterval := range existing {
			// Ручные записи не принадлежат никакому правилу
			if existingInterval.IsManual() {
				continue
			}
			// Исключение нужно для проверки "редактирования на месте"
			if excludeRuleID != uuid.Nil && existingInterval.SourceRuleID == excludeRuleID {
				continue
			}
			if candidate.Overlaps(existingInterval) {
				conflictingRuleIDs[existingInterval.SourceRuleID] = struct{}{}
			}
		}
	}

	conflicting := make([]domain.Rule, 0)
	if len(conflictingRuleIDs) == 0 {
		return conflicting, nil
	}

	allRules, err := s.ruleStore.FindAllByChildID(ctx, config.ChildID)
	if err != nil {
		return nil, fmt.Errorf("custody.conflicts.rules.fetch_failed: %w", err)
	}

	for _, rule := range allRules {
		if _, ok := conflictingRuleIDs[rule.ID]; ok {
			conflicting = append(conflicting, rule)
		}
	}

	s.logger.Debug("custody.conflicts.checked", out.LogFields{
		"childId":        config.ChildID,
		"conflictsCount": len(conflicting),
	})

	return conflicting, nil
}

// GetResolvedCalendar - канонический путь чтения календаря
func (s *CustodyService) GetResolvedCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, error) {
	if startDate.IsZero() || endDate.IsZero() || endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	debugInfo := custodyServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}

	// Кэшируются только запросы по конкретному ребенку
	if s.cachePort != nil && childID != uuid.Nil {
		if cached, exists := s.cachePort.GetCalendar(ctx, childID, startDate, endDate); exists {
			s.logger.Debug("calendar.resolve.cache.hit", out.LogFields{
				"childId":        childID,
				"intervalsCount": len(cached),
			})
			return cached, nil
		}

		s.logger.Debug("calendar.resolve.cache.miss", out.LogFields{
			"childId": childID,
		})
	}

	fetchDebug := domain.DebugInfo{
		Event: "calendar.resolve.intervals.fetch",
	}
	fetchDebug.Start()

	rawIntervals, err := s.intervalStore.FindByDateRange(ctx, childID, startDate, endDate)
	if err != nil {
		s.logger.Error("calendar.resolve.intervals.fetch_failed", out.LogFields{
			"childId": childID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("calendar.resolve.intervals.fetch_failed: %w", err)
	}

	fetchDebug.Elapse()
	debugInfo.AddDebugInfo(fetchDebug)

	resolveDebug := domain.DebugInfo{
		Event: "calendar.resolve.conflicts.resolve",
	}
	resolveDebug.Start()

	resolved := resolveConflicts(s.idGen, rawIntervals)

	resolveDebug.Elapse()
	debugInfo.AddDebugInfo(resolveDebug)

	if s.cachePort != nil && childID != uuid.Nil {
		s.cachePort.StoreCalendar(ctx, childID, startDate, endDate, resolved)
	}

	s.logger.Debug("calendar.resolve.finished", out.LogFields{
		"childId":       childID,
		"rawCount":      len(rawIntervals),
		"resolvedCount": len(resolved),
		"timings":       debugInfo.data,
	})

	return resolved, nil
}
