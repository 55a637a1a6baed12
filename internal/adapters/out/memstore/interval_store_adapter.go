package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// IntervalStoreAdapter - эталонное хранилище интервалов в памяти
// Арена записей по id плюс вторичные индексы по ребенку и по правилу
// Индекс по правилу не содержит ручных записей, у них sourceRuleId пустой
type IntervalStoreAdapter struct {
	mu        sync.RWMutex
	intervals map[uuid.UUID]domain.CustodyInterval
	byChild   map[uuid.UUID][]uuid.UUID
	byRule    map[uuid.UUID][]uuid.UUID
	logger    out.LoggerPort
}

func NewIntervalStoreAdapter(logger out.LoggerPort) *IntervalStoreAdapter {
	return &IntervalStoreAdapter{
		intervals: make(map[uuid.UUID]domain.CustodyInterval),
		byChild:   make(map[uuid.UUID][]uuid.UUID),
		byRule:    make(map[uuid.UUID][]uuid.UUID),
		logger:    logger.WithModule("IntervalStoreAdapter"),
	}
}

func (a *IntervalStoreAdapter) Save(ctx context.Context, intervals []domain.CustodyInterval) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, interval := range intervals {
		if _, exists := a.intervals[interval.ID]; !exists {
			a.byChild[interval.ChildID] = append(a.byChild[interval.ChildID], interval.ID)
			if interval.SourceRuleID != uuid.Nil {
				a.byRule[interval.SourceRuleID] = append(a.byRule[interval.SourceRuleID], interval.ID)
			}
		}
		a.intervals[interval.ID] = interval
	}

	return nil
}

func (a *IntervalStoreAdapter) FindByDateRange(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make([]domain.CustodyInterval, 0)

	if childID != uuid.Nil {
		for _, id := range a.byChild[childID] {
			interval := a.intervals[id]
			if inRange(interval, startDate, endDate) {
				result = append(result, interval)
			}
		}
		return result, nil
	}

	// Без ребенка ищем по всей арене
	for _, interval := range a.intervals {
		if inRange(interval, startDate, endDate) {
			result = append(result, interval)
		}
	}

	return result, nil
}

func (a *IntervalStoreAdapter) DeleteByRuleID(ctx context.Context, ruleID uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := a.byRule[ruleID]
	if len(ids) == 0 {
		return nil
	}

	deleted := make(map[uuid.UUID]struct{}, len(ids))
	var childID uuid.UUID
	for _, id := range ids {
		childID = a.intervals[id].ChildID
		delete(a.intervals, id)
		deleted[id] = struct{}{}
	}
	delete(a.byRule, ruleID)

	// Подчищаем индекс по ребенку
	childIDs := a.byChild[childID]
	filtered := make([]uuid.UUID, 0, len(childIDs))
	for _, id := range childIDs {
		if _, gone := deleted[id]; !gone {
			filtered = append(filtered, id)
		}
	}
	a.byChild[childID] = filtered

	a.logger.Debug("memstore.intervals.cascade_deleted", out.LogFields{
		"ruleId":       ruleID,
		"deletedCount": len(deleted),
	})

	return nil
}

func (a *IntervalStoreAdapter) UpdatePriorityByRuleID(ctx context.Context, ruleID uuid.UUID, newPriority int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, id := range a.byRule[ruleID] {
		interval := a.intervals[id]
		interval.Priority = newPriority
		a.intervals[id] = interval
	}

	return nil
}

func inRange(interval domain.CustodyInterval, startDate, endDate json_types.Date) bool {
	return !interval.Date.Before(startDate) && !interval.Date.After(endDate)
}
