package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AMQPPublisher publishes results to a topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher declares exchange as a durable topic exchange.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// Publish implements Publisher.
func (p *AMQPPublisher) Publish(_ context.Context, result Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(p.exchange, RoutingKey(result.RequestID), false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: result.RequestID,
		Body:          body,
	})
}

// Close closes the channel.
func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}

// Consumer drains a durable queue with a fixed pool of workers.
type Consumer struct {
	conn      *amqp.Connection
	queue     string
	workers   int
	processor *Processor
	logger    *zap.Logger
}

// NewConsumer creates a consumer. workers <= 0 selects one worker.
func NewConsumer(conn *amqp.Connection, queue string, workers int, processor *Processor, logger *zap.Logger) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	if queue == "" {
		queue = DefaultQueue
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{conn: conn, queue: queue, workers: workers, processor: processor, logger: logger}
}

// Run consumes until ctx is canceled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consume channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.queue, err)
	}
	if err := ch.Qos(c.workers, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", c.queue, err)
	}

	c.logger.Info("worker pool started", zap.String("queue", c.queue), zap.Int("workers", c.workers))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.workers; i++ {
		id := i + 1
		g.Go(func() error {
			return c.work(gctx, id, deliveries)
		})
	}
	err = g.Wait()
	c.logger.Info("worker pool stopped", zap.String("queue", c.queue))
	return err
}

func (c *Consumer) work(ctx context.Context, id int, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			outcome := c.processor.Process(ctx, d.Body, d.Redelivered)
			c.logger.Debug("settled delivery", zap.Int("worker", id), zap.Stringer("outcome", outcome))
			var err error
			if outcome == Requeue {
				err = d.Nack(false, true)
			} else {
				err = d.Ack(false)
			}
			if err != nil {
				return fmt.Errorf("failed to settle delivery: %w", err)
			}
		}
	}
}
