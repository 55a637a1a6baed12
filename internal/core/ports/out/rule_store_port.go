package out

import (
	"context"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
)

type RuleStorePort interface {
	// Save сохраняет новое правило или перезаписывает существующее с тем же id
	Save(ctx context.Context, rule *domain.Rule) error
	// FindByID возвращает nil без ошибки, если правило не найдено
	FindByID(ctx context.Context, ruleID uuid.UUID) (*domain.Rule, error)
	FindAllByChildID(ctx context.Context, childID uuid.UUID) ([]domain.Rule, error)
	// Delete несуществующего правила не является ошибкой
	Delete(ctx context.Context, ruleID uuid.UUID) error
}
