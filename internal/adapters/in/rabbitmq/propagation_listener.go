package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/famcal/custody-schedule-engine/internal/config"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/in"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
)

// PropagationListener слушает две очереди:
//   - очередь переноса правил: сообщение запускает симуляцию и перенос на следующий месяц
//   - очередь кэша: сообщение инвалидирует календарь ребенка или весь кэш целиком
type PropagationListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel

	useCase in.CustodyUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	consumerWg      sync.WaitGroup
	consumerCancels []chan struct{}
	cancelsMu       sync.Mutex
	closeOnce       sync.Once
}

func NewPropagationListener(useCase in.CustodyUseCase, cfg *config.Config, logger out.LoggerPort) (*PropagationListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AmqpURI)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.AmqpURI,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &PropagationListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("PropagationListener"),
	}, nil
}

func (l *PropagationListener) Start(ctx context.Context) error {
	if err := l.startPropagationQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("propagation.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.PropagationQueue,
	})

	if err := l.startCacheQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("cache.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.CacheQueue,
	})

	return nil
}

func (l *PropagationListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	l.cancelsMu.Lock()
	for _, cancel := range l.consumerCancels {
		close(cancel)
	}
	l.consumerCancels = nil
	l.cancelsMu.Unlock()

	l.consumerWg.Wait()

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *PropagationListener) addConsumerCancel(cancel chan struct{}) {
	l.cancelsMu.Lock()
	defer l.cancelsMu.Unlock()
	l.consumerCancels = append(l.consumerCancels, cancel)
}

func (l *PropagationListener) closeConnection(reason string) {
	l.closeOnce.Do(func() {
		l.logger.Warn("rabbitmq.connection.closing", out.LogFields{
			"reason": reason,
		})
		if l.channel != nil {
			l.channel.Close()
		}
		if l.conn != nil {
			l.conn.Close()
		}
	})
}

// declareAndConsume объявляет очередь и подписывается на нее, с повторами
func (l *PropagationListener) declareAndConsume(queueName string) (<-chan amqp.Delivery, string, error) {
	var queue amqp.Queue
	var err error

	for attempts := 0; attempts < 3; attempts++ {
		queue, err = l.channel.QueueDeclare(
			queueName,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)

		if err == nil {
			l.logger.Info("rabbitmq.queue_declare.success", out.LogFields{
				"queue": queueName,
			})
			break
		}

		l.logger.Warn("rabbitmq.queue_declare.retry", out.LogFields{
			"queue":   queueName,
			"attempt": attempts + 1,
			"error":   err.Error(),
		})

		if attempts == 2 {
			l.closeConnection(fmt.Sprintf("failed to declare queue %s: %s", queueName, err.Error()))
			return nil, "", fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}

		time.Sleep(500 * time.Millisecond)
	}

	var msgs <-chan amqp.Delivery
	consumerID := fmt.Sprintf("consumer-%s-%d", queue.Name, time.Now().UnixNano())

	for attempts := 0; attempts < 3; attempts++ {
		msgs, err = l.channel.Consume(
			queue.Name,
			consumerID, // уникальный ID
			false,      // auto-ack, подтверждаем вручную
			false,      // exclusive
			false,      // no-local
			false,      // no-wait
			nil,        // args
		)

		if err == nil {
			l.logger.Info("rabbitmq.consume.success", out.LogFields{
				"queue":      queue.Name,
				"consumerID": consumerID,
			})
			break
		}

		l.logger.Warn("rabbitmq.consume.retry", out.LogFields{
			"queue":      queue.Name,
			"consumerID": consumerID,
			"attempt":    attempts + 1,
			"error":      err.Error(),
		})

		if attempts == 2 {
			l.closeConnection(fmt.Sprintf("failed to consume from queue %s: %s", queue.Name, err.Error()))
			return nil, "", fmt.Errorf("failed to consume from queue %s: %w", queue.Name, err)
		}

		time.Sleep(500 * time.Millisecond)
	}

	return msgs, consumerID, nil
}

type messageProcessor func(ctx context.Context, msg amqp.Delivery) error

// runConsumer крутит цикл обработки сообщений до отмены контекста или остановки слушателя
func (l *PropagationListener) runConsumer(ctx context.Context, queueName, consumerID string, msgs <-chan amqp.Delivery, process messageProcessor) {
	consumerCancel := make(chan struct{})
	l.addConsumerCancel(consumerCancel)

	l.consumerWg.Add(1)

	go func() {
		defer l.consumerWg.Done()
		l.logger.Info("rabbitmq.consumer.started", out.LogFields{
			"queue":      queueName,
			"consumerID": consumerID,
		})

		for {
			select {
			case <-ctx.Done():
				l.logger.Info("rabbitmq.consumer.stopping_by_context", out.LogFields{
					"queue":      queueName,
					"consumerID": consumerID,
				})
				return
			case <-consumerCancel:
				l.logger.Info("rabbitmq.consumer.stopping_by_cancel", out.LogFields{
					"queue":      queueName,
					"consumerID": consumerID,
				})
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("rabbitmq.consumer.channel_closed", out.LogFields{
						"queue":      queueName,
						"consumerID": consumerID,
					})
					l.closeConnection(fmt.Sprintf("consumer channel closed for queue %s", queueName))
					return
				}

				l.logger.Debug("rabbitmq.message.received", out.LogFields{
					"queue":     queueName,
					"messageId": msg.MessageId,
				})

				if err := process(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.process_message.failed", out.LogFields{
						"queue":     queueName,
						"messageId": msg.MessageId,
						"error":     err.Error(),
					})

					// Отклоняем сообщение при ошибке, но не возвращаем в очередь
					if err := msg.Nack(false, false); err != nil {
						l.logger.Error("rabbitmq.message.nack_failed", out.LogFields{
							"error": err.Error(),
						})
					}
				} else {
					if err := msg.Ack(false); err != nil {
						l.logger.Error("rabbitmq.message.ack_failed", out.LogFields{
							"error": err.Error(),
						})
					}
				}
			}
		}
	}()
}
