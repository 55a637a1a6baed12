package custody_service

import (
	"context"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// Инвалидация кэша календарей, внешние вызовы приходят из слушателя RabbitMQ

func (s *CustodyService) InvalidateCalendarCache(ctx context.Context, childID uuid.UUID) error {
	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateCalendarCache(ctx, childID)
	return nil
}

func (s *CustodyService) InvalidateAllCalendarCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateAllCalendarCache(ctx)
	return nil
}

// invalidateChildCalendar вызывается после каждой мутации правил ребенка
func (s *CustodyService) invalidateChildCalendar(ctx context.Context, childID uuid.UUID) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateCalendarCache(ctx, childID)
	s.logger.Debug("calendar.cache.invalidated", out.LogFields{
		"childId": childID,
	})
}
