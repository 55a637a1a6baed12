package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/famcal/custody-schedule-engine/internal/config"
	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

type calendarCacheEntry struct {
	Intervals []domain.CustodyInterval
	StartDate json_types.Date
	EndDate   json_types.Date
}

// CalendarCacheAdapter - LRU-кэш разрешенных календарей по ребенку
// Запись хранит период, для которого календарь был разрешен
type CalendarCacheAdapter struct {
	mu     sync.RWMutex
	cache  *lru.Cache[uuid.UUID, *calendarCacheEntry]
	logger out.LoggerPort
}

func NewCalendarCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CalendarCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[uuid.UUID, *calendarCacheEntry](cfg.Cache.CalendarsSize)
	if err != nil {
		logger.Error("cache.calendars.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.CalendarsSize,
		})
		return nil, err
	}

	return &CalendarCacheAdapter{
		cache:  lruCache,
		logger: logger.WithModule("CalendarCacheAdapter"),
	}, nil
}

func (c *CalendarCacheAdapter) GetCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(childID)
	if !exists {
		c.logger.Debug("cache.calendars.get.miss", out.LogFields{
			"childId": childID,
		})
		return nil, false
	}

	// Кэш полезен только если запрошенный период целиком внутри сохраненного
	if startDate.Before(entry.StartDate) || endDate.After(entry.EndDate) {
		c.logger.Debug("cache.calendars.get.date_range_mismatch", out.LogFields{
			"childId":        childID,
			"requestedStart": startDate,
			"requestedEnd":   endDate,
			"cachedStart":    entry.StartDate,
			"cachedEnd":      entry.EndDate,
		})
		return nil, false
	}

	intervals := make([]domain.CustodyInterval, 0, len(entry.Intervals))
	for _, interval := range entry.Intervals {
		if interval.Date.Before(startDate) || interval.Date.After(endDate) {
			continue
		}
		intervals = append(intervals, interval)
	}

	c.logger.Debug("cache.calendars.get.hit", out.LogFields{
		"childId":        childID,
		"intervalsCount": len(intervals),
	})

	return intervals, true
}

func (c *CalendarCacheAdapter) StoreCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date, intervals []domain.CustodyInterval) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.calendars.store", out.LogFields{
		"childId":        childID,
		"intervalsCount": len(intervals),
	})

	c.cache.Add(childID, &calendarCacheEntry{
		Intervals: intervals,
		StartDate: startDate,
		EndDate:   endDate,
	})
}

func (c *CalendarCacheAdapter) InvalidateCalendarCache(ctx context.Context, childID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(childID)
}

func (c *CalendarCacheAdapter) InvalidateAllCalendarCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}
