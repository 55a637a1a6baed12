package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famcal/custody-schedule-engine/internal/config"
	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}

func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

func newTestAdapter(t *testing.T) *CalendarCacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.CalendarsSize = 10

	adapter, err := NewCalendarCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	require.NotNil(t, adapter)
	return adapter
}

func cachedInterval(childID uuid.UUID, day int) domain.CustodyInterval {
	return domain.CustodyInterval{
		ID:         uuid.New(),
		ChildID:    childID,
		Date:       json_types.NewDate(2026, time.February, day),
		StartTime:  json_types.NewClockTime(0, 0),
		EndTime:    json_types.NewClockTime(23, 59),
		AssignedTo: domain.ParentMom,
	}
}

func TestCalendarCacheAdapter_DisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	adapter, err := NewCalendarCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	assert.Nil(t, adapter)
}

func TestCalendarCacheAdapter_StoreAndGet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	childID := uuid.New()

	start := json_types.NewDate(2026, time.February, 1)
	end := json_types.NewDate(2026, time.February, 28)
	adapter.StoreCalendar(ctx, childID, start, end, []domain.CustodyInterval{
		cachedInterval(childID, 5),
		cachedInterval(childID, 20),
	})

	intervals, exists := adapter.GetCalendar(ctx, childID, start, end)
	require.True(t, exists)
	assert.Len(t, intervals, 2)

	_, exists = adapter.GetCalendar(ctx, uuid.New(), start, end)
	assert.False(t, exists)
}

func TestCalendarCacheAdapter_SubrangeIsFiltered(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	childID := uuid.New()

	adapter.StoreCalendar(ctx, childID,
		json_types.NewDate(2026, time.February, 1), json_types.NewDate(2026, time.February, 28),
		[]domain.CustodyInterval{
			cachedInterval(childID, 5),
			cachedInterval(childID, 20),
		})

	intervals, exists := adapter.GetCalendar(ctx, childID,
		json_types.NewDate(2026, time.February, 1), json_types.NewDate(2026, time.February, 10))
	require.True(t, exists)
	require.Len(t, intervals, 1)
	assert.Equal(t, "2026-02-05", intervals[0].Date.String())
}

func TestCalendarCacheAdapter_WiderRangeMisses(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	childID := uuid.New()

	adapter.StoreCalendar(ctx, childID,
		json_types.NewDate(2026, time.February, 1), json_types.NewDate(2026, time.February, 14),
		[]domain.CustodyInterval{cachedInterval(childID, 5)})

	// The cached span does not cover the requested range
	_, exists := adapter.GetCalendar(ctx, childID,
		json_types.NewDate(2026, time.February, 1), json_types.NewDate(2026, time.February, 28))
	assert.False(t, exists)
}

func TestCalendarCacheAdapter_Invalidate(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	start := json_types.NewDate(2026, time.February, 1)
	end := json_types.NewDate(2026, time.February, 28)
	adapter.StoreCalendar(ctx, first, start, end, []domain.CustodyInterval{cachedInterval(first, 5)})
	adapter.StoreCalendar(ctx, second, start, end, []domain.CustodyInterval{cachedInterval(second, 6)})

	adapter.InvalidateCalendarCache(ctx, first)
	_, exists := adapter.GetCalendar(ctx, first, start, end)
	assert.False(t, exists)
	_, exists = adapter.GetCalendar(ctx, second, start, end)
	assert.True(t, exists)

	adapter.InvalidateAllCalendarCache(ctx)
	_, exists = adapter.GetCalendar(ctx, second, start, end)
	assert.False(t, exists)
}
