package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

type QuickCallNotifier interface {
	NotifyQuickCall(ctx context.Context, req entity.QuickCallRequest) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

var ErrWorkerNotStarted = errors.New("quick call worker not started")

// Worker turns queued quick-call requests into admin alerts. Messages
// that cannot be decoded or delivered are dead-lettered.
type Worker struct {
	Channel  Consumer
	Notifier QuickCallNotifier
	Logger   *zap.Logger

	mu    sync.Mutex
	state error
}

func NewWorker(ch Consumer, notifier QuickCallNotifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Notifier: notifier, Logger: logger, state: ErrWorkerNotStarted}
}

// Healthy is nil while the worker is consuming, otherwise the reason it
// is not.
func (w *Worker) Healthy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Worker) setState(err error) {
	w.mu.Lock()
	w.state = err
	w.mu.Unlock()
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		err = fmt.Errorf("queue: consume %s: %w", queueName, err)
		w.setState(err)
		return err
	}

	w.setState(nil)
	w.Logger.Info("worker waiting for messages", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.setState(ctx.Err())
			return nil
		case d, ok := <-msgs:
			if !ok {
				err := fmt.Errorf("queue: delivery channel for %s closed", queueName)
				w.setState(err)
				return err
			}
			if err := w.handle(ctx, d.Body); err != nil {
				w.Logger.Error("quick call dead-lettered", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handle(ctx context.Context, body []byte) error {
	var payload QuickCallPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode quick call: %w", err)
	}

	return w.Notifier.NotifyQuickCall(ctx, entity.QuickCallRequest{
		Name:        payload.Name,
		Phone:       payload.Phone,
		Subject:     payload.Subject,
		RequestedAt: payload.RequestedAt,
	})
}
