package out

import (
	"context"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

type IntervalStorePort interface {
	// Save дописывает интервалы, существующие записи не трогает
	Save(ctx context.Context, intervals []domain.CustodyInterval) error
	// FindByDateRange возвращает интервалы за период включительно
	// childID == uuid.Nil означает поиск по всем детям
	FindByDateRange(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, error)
	// DeleteByRuleID удаляет только интервалы с данным sourceRuleId,
	// ручные записи без sourceRuleId не затрагиваются
	DeleteByRuleID(ctx context.Context, ruleID uuid.UUID) error
	// UpdatePriorityByRuleID массово переставляет приоритет всех интервалов правила
	UpdatePriorityByRuleID(ctx context.Context, ruleID uuid.UUID, newPriority int) error
}
