package rabbitmq

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
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

// useCaseStub records which operations the listener triggered
type useCaseStub struct {
	simulated       []uuid.UUID
	executed        int
	invalidated     []uuid.UUID
	invalidatedAll  int
	simulationPlan  *domain.PropagationResult
	simulationError error
}

func (s *useCaseStub) GeneratePreview(ctx context.Context, config domain.PatternConfig) ([]domain.CustodyInterval, error) {
	return nil, nil
}

func (s *useCaseStub) CreateRule(ctx context.Context, config domain.PatternConfig) (*domain.Rule, error) {
	return nil, nil
}

func (s *useCaseStub) DeleteRule(ctx context.Context, ruleID uuid.UUID) error { return nil }

func (s *useCaseStub) ReorderRule(ctx context.Context, ruleID uuid.UUID, direction domain.ReorderDirection) error {
	return nil
}

func (s *useCaseStub) GetRulesByChild(ctx context.Context, childID uuid.UUID) ([]domain.Rule, error) {
	return nil, nil
}

func (s *useCaseStub) CheckConflicts(ctx context.Context, config domain.PatternConfig, excludeRuleID uuid.UUID) ([]domain.Rule, error) {
	return nil, nil
}

func (s *useCaseStub) GetResolvedCalendar(ctx context.Context, childID uuid.UUID, startDate, endDate json_types.Date) ([]domain.CustodyInterval, error) {
	return nil, nil
}

func (s *useCaseStub) SimulatePropagation(ctx context.Context, childID uuid.UUID, referenceMonth json_types.Date) (*domain.PropagationResult, error) {
	s.simulated = append(s.simulated, childID)
	if s.simulationError != nil {
		return nil, s.simulationError
	}
	return s.simulationPlan, nil
}

func (s *useCaseStub) ExecutePropagation(ctx context.Context, configs []domain.PatternConfig) (int, error) {
	s.executed += len(configs)
	return len(configs), nil
}

func (s *useCaseStub) InvalidateCalendarCache(ctx context.Context, childID uuid.UUID) error {
	s.invalidated = append(s.invalidated, childID)
	return nil
}

func (s *useCaseStub) InvalidateAllCalendarCache(ctx context.Context) error {
	s.invalidatedAll++
	return nil
}

func newTestListener(useCase *useCaseStub) *PropagationListener {
	cfg := &config.Config{}
	cfg.RabbitMQ.PropagationQueue = "custody.propagation.trigger"
	cfg.RabbitMQ.CacheQueue = "custody.calendar.cache"

	return &PropagationListener{
		useCase: useCase,
		cfg:     cfg,
		logger:  nopLogger{},
	}
}

func TestProcessPropagationMessage_RunsSimulateThenExecute(t *testing.T) {
	childID := uuid.New()
	stub := &useCaseStub{
		simulationPlan: &domain.PropagationResult{
			CanProceed: true,
			RulesToCreate: []domain.PatternConfig{
				{ChildID: childID, Type: domain.PatternTypeWeekly},
				{ChildID: childID, Type: domain.PatternTypeWeekend},
			},
		},
	}
	listener := newTestListener(stub)

	body := fmt.Sprintf(`{"childId": %q, "referenceMonth": "2026-02-15"}`, childID)
	err := listener.processPropagationMessage(context.Background(), amqp.Delivery{Body: []byte(body)})
	require.NoError(t, err)

	require.Len(t, stub.simulated, 1)
	assert.Equal(t, childID, stub.simulated[0])
	assert.Equal(t, 2, stub.executed)
}

func TestProcessPropagationMessage_EmptyPlanSkipsExecute(t *testing.T) {
	stub := &useCaseStub{
		simulationPlan: &domain.PropagationResult{
			CanProceed:    false,
			RulesToCreate: []domain.PatternConfig{},
		},
	}
	listener := newTestListener(stub)

	body := fmt.Sprintf(`{"childId": %q, "referenceMonth": "2026-02-15"}`, uuid.New())
	err := listener.processPropagationMessage(context.Background(), amqp.Delivery{Body: []byte(body)})
	require.NoError(t, err)
	assert.Equal(t, 0, stub.executed)
}

func TestProcessPropagationMessage_MalformedBody(t *testing.T) {
	stub := &useCaseStub{}
	listener := newTestListener(stub)

	err := listener.processPropagationMessage(context.Background(), amqp.Delivery{Body: []byte("{broken")})
	assert.Error(t, err)
	assert.Empty(t, stub.simulated)
}

func TestProcessPropagationMessage_SimulationFailure(t *testing.T) {
	stub := &useCaseStub{simulationError: fmt.Errorf("store down")}
	listener := newTestListener(stub)

	body := fmt.Sprintf(`{"childId": %q, "referenceMonth": "2026-02-15"}`, uuid.New())
	err := listener.processPropagationMessage(context.Background(), amqp.Delivery{Body: []byte(body)})
	assert.Error(t, err)
	assert.Equal(t, 0, stub.executed)
}

func TestProcessCacheMessage_InvalidateChild(t *testing.T) {
	stub := &useCaseStub{}
	listener := newTestListener(stub)
	childID := uuid.New()

	body := fmt.Sprintf(`{"type": "invalidate", "childId": %q}`, childID)
	err := listener.processCacheMessage(context.Background(), amqp.Delivery{Body: []byte(body)})
	require.NoError(t, err)

	require.Len(t, stub.invalidated, 1)
	assert.Equal(t, childID, stub.invalidated[0])
}

func TestProcessCacheMessage_InvalidateAll(t *testing.T) {
	stub := &useCaseStub{}
	listener := newTestListener(stub)

	err := listener.processCacheMessage(context.Background(), amqp.Delivery{Body: []byte(`{"type": "invalidate_all"}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.invalidatedAll)
}

func TestProcessCacheMessage_InvalidateWithoutChildFails(t *testing.T) {
	stub := &useCaseStub{}
	listener := newTestListener(stub)

	err := listener.processCacheMessage(context.Background(), amqp.Delivery{Body: []byte(`{"type": "invalidate"}`)})
	assert.Error(t, err)
	assert.Empty(t, stub.invalidated)
}

func TestProcessCacheMessage_UnknownTypeIgnored(t *testing.T) {
	stub := &useCaseStub{}
	listener := newTestListener(stub)

	err := listener.processCacheMessage(context.Background(), amqp.Delivery{Body: []byte(`{"type": "store"}`)})
	require.NoError(t, err)
	assert.Equal(t, 0, stub.invalidatedAll)
	assert.Empty(t, stub.invalidated)
}

func TestStop_NilListenerIsSafe(t *testing.T) {
	var listener *PropagationListener
	assert.NoError(t, listener.Stop())
}

func TestDisabledRabbitMQReturnsNoListener(t *testing.T) {
	cfg := &config.Config{}
	cfg.RabbitMQ.Enabled = false

	listener, err := NewPropagationListener(&useCaseStub{}, cfg, nopLogger{})
	require.NoError(t, err)
	assert.Nil(t, listener)
}
