package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

type CacheHitType string

const (
	CacheHitTypeInvalidate    CacheHitType = "invalidate"
	CacheHitTypeInvalidateAll CacheHitType = "invalidate_all"
)

// CacheInvalidateMessage инвалидирует календарь одного ребенка или весь кэш
type CacheInvalidateMessage struct {
	Type    CacheHitType `json:"type"`
	ChildID uuid.UUID    `json:"childId"`
}

func (l *PropagationListener) startCacheQueue(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	queueName := l.cfg.RabbitMQ.CacheQueue
	msgs, consumerID, err := l.declareAndConsume(queueName)
	if err != nil {
		return err
	}

	l.runConsumer(ctx, queueName, consumerID, msgs, l.processCacheMessage)

	return nil
}

func (l *PropagationListener) processCacheMessage(ctx context.Context, msg amqp.Delivery) error {
	var msgJson CacheInvalidateMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	invalidateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch msgJson.Type {
	case CacheHitTypeInvalidateAll:
		if err := l.useCase.InvalidateAllCalendarCache(invalidateCtx); err != nil {
			return fmt.Errorf("failed to invalidate all calendar cache: %w", err)
		}
		l.logger.Info("cache.message.invalidated_all", nil)
	case CacheHitTypeInvalidate:
		if msgJson.ChildID == uuid.Nil {
			return fmt.Errorf("invalidate message without childId")
		}
		if err := l.useCase.InvalidateCalendarCache(invalidateCtx, msgJson.ChildID); err != nil {
			return fmt.Errorf("failed to invalidate calendar cache: %w", err)
		}
		l.logger.Info("cache.message.invalidated", out.LogFields{
			"childId": msgJson.ChildID,
		})
	default:
		l.logger.Debug("cache.message.skipped", out.LogFields{
			"type": string(msgJson.Type),
		})
	}

	return nil
}
