package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// PropagationTriggerMessage приходит от планировщика в конце месяца
type PropagationTriggerMessage struct {
	ChildID        uuid.UUID       `json:"childId"`
	ReferenceMonth json_types.Date `json:"referenceMonth"`
}

func (l *PropagationListener) startPropagationQueue(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	queueName := l.cfg.RabbitMQ.PropagationQueue
	msgs, consumerID, err := l.declareAndConsume(queueName)
	if err != nil {
		return err
	}

	l.runConsumer(ctx, queueName, consumerID, msgs, l.processPropagationMessage)

	return nil
}

func (l *PropagationListener) processPropagationMessage(ctx context.Context, msg amqp.Delivery) error {
	var trigger PropagationTriggerMessage
	if err := json.Unmarshal(msg.Body, &trigger); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	l.logger.Info("propagation.message.received", out.LogFields{
		"childId":        trigger.ChildID,
		"referenceMonth": trigger.ReferenceMonth,
	})

	processCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := l.useCase.SimulatePropagation(processCtx, trigger.ChildID, trigger.ReferenceMonth)
	if err != nil {
		return fmt.Errorf("failed to simulate propagation: %w", err)
	}

	if !result.CanProceed {
		l.logger.Info("propagation.message.nothing_to_create", out.LogFields{
			"childId":      trigger.ChildID,
			"skippedCount": len(result.SkippedRules),
		})
		return nil
	}

	createdCount, err := l.useCase.ExecutePropagation(processCtx, result.RulesToCreate)
	if err != nil {
		return fmt.Errorf("failed to execute propagation: %w", err)
	}

	l.logger.Info("propagation.message.finished", out.LogFields{
		"childId":      trigger.ChildID,
		"createdCount": createdCount,
		"skippedCount": len(result.SkippedRules),
	})

	return nil
}
