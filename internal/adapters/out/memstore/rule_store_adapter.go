package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// RuleStoreAdapter - эталонное хранилище правил в памяти
// Арена записей по id плюс вторичный индекс по ребенку,
// вместо линейного поиска по общему слайсу
type RuleStoreAdapter struct {
	mu      sync.RWMutex
	rules   map[uuid.UUID]domain.Rule
	byChild map[uuid.UUID][]uuid.UUID
	logger  out.LoggerPort
}

func NewRuleStoreAdapter(logger out.LoggerPort) *RuleStoreAdapter {
	return &RuleStoreAdapter{
		rules:   make(map[uuid.UUID]domain.Rule),
		byChild: make(map[uuid.UUID][]uuid.UUID),
		logger:  logger.WithModule("RuleStoreAdapter"),
	}
}

func (a *RuleStoreAdapter) Save(ctx context.Context, rule *domain.Rule) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.rules[rule.ID]; !exists {
		a.byChild[rule.ChildID] = append(a.byChild[rule.ChildID], rule.ID)
	}
	a.rules[rule.ID] = *rule

	return nil
}

func (a *RuleStoreAdapter) FindByID(ctx context.Context, ruleID uuid.UUID) (*domain.Rule, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rule, exists := a.rules[ruleID]
	if !exists {
		return nil, nil
	}

	found := rule
	return &found, nil
}

func (a *RuleStoreAdapter) FindAllByChildID(ctx context.Context, childID uuid.UUID) ([]domain.Rule, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := a.byChild[childID]
	rules := make([]domain.Rule, 0, len(ids))
	for _, id := range ids {
		rules = append(rules, a.rules[id])
	}

	return rules, nil
}

func (a *RuleStoreAdapter) Delete(ctx context.Context, ruleID uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rule, exists := a.rules[ruleID]
	// Удаление несуществующего правила идемпотентно
	if !exists {
		return nil
	}

	delete(a.rules, ruleID)

	ids := a.byChild[rule.ChildID]
	filtered := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != ruleID {
			filtered = append(filtered, id)
		}
	}
	a.byChild[rule.ChildID] = filtered

	return nil
}
