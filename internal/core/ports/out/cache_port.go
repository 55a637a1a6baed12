package out

import (
	"context"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
)

type CachePort interface {
	// Кэширование разрешенного календаря
	GetCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, bool)
	StoreCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date, intervals []domain.CustodyInterval)
	InvalidateCalendarCache(ctx context.Context, childID uuid.UUID)
	InvalidateAllCalendarCache(ctx context.Context)
}
