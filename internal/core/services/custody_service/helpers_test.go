package custody_service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// seqIDGenerator hands out a deterministic sequence of ids so tests can
// assert on generated intervals without caring about randomness
type seqIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func newSeqIDGenerator() *seqIDGenerator {
	return &seqIDGenerator{}
}

func (g *seqIDGenerator) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", g.counter))
}

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}

func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

// recordingCache is a cache stub that stores a single calendar per child
// and counts invalidations
type recordingCache struct {
	mu             sync.Mutex
	calendars      map[uuid.UUID][]domain.CustodyInterval
	invalidations  int
	invalidateAlls int
	storeCalls     int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		calendars: make(map[uuid.UUID][]domain.CustodyInterval),
	}
}

func (c *recordingCache) GetCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	intervals, exists := c.calendars[childID]
	return intervals, exists
}

func (c *recordingCache) StoreCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date, intervals []domain.CustodyInterval) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeCalls++
	c.calendars[childID] = intervals
}

func (c *recordingCache) InvalidateCalendarCache(ctx context.Context, childID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	delete(c.calendars, childID)
}

func (c *recordingCache) InvalidateAllCalendarCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateAlls++
	c.calendars = make(map[uuid.UUID][]domain.CustodyInterval)
}
