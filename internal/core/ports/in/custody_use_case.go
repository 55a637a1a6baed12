package in

import (
	"context"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

type CustodyUseCase interface {
	// Генерация интервалов без сохранения, для предпросмотра
	GeneratePreview(ctx context.Context, config domain.PatternConfig) ([]domain.CustodyInterval, error)

	// Жизненный цикл правил
	CreateRule(ctx context.Context, config domain.PatternConfig) (*domain.Rule, error)
	DeleteRule(ctx context.Context, ruleID uuid.UUID) error
	ReorderRule(ctx context.Context, ruleID uuid.UUID, direction domain.ReorderDirection) error
	GetRulesByChild(ctx context.Context, childID uuid.UUID) ([]domain.Rule, error)

	// Проверка пересечений с существующими правилами, чисто информационная
	CheckConflicts(ctx context.Context, config domain.PatternConfig, excludeRuleID uuid.UUID) ([]domain.Rule, error)

	// Канонический путь чтения календаря
	GetResolvedCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, error)

	// Перенос правил на следующий месяц
	SimulatePropagation(ctx context.Context, childID uuid.UUID, referenceMonth json_types.Date) (*domain.PropagationResult, error)
	ExecutePropagation(ctx context.Context, configs []domain.PatternConfig) (int, error)

	// Инвалидация кэша календарей, дергается слушателем RabbitMQ
	InvalidateCalendarCache(ctx context.Context, childID uuid.UUID) error
	InvalidateAllCalendarCache(ctx context.Context) error
}
