// Package kafka feeds events published on the bus into the ingest service.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/heartmarshall/eventfeed-backend/internal/config"
)

// Consumer reads the events topic as a member of a consumer group.
type Consumer struct {
	log     *slog.Logger
	group   sarama.ConsumerGroup
	topic   string
	handler *groupHandler
}

// NewConsumer joins the configured consumer group.
func NewConsumer(logger *slog.Logger, cfg config.KafkaConfig, rec recorder) (*Consumer, error) {
	sc := sarama.NewConfig()
	sc.ClientID = "eventfeed"
	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	sc.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer group: %w", err)
	}
	return newConsumer(logger, group, cfg.Topic, rec), nil
}

func newConsumer(logger *slog.Logger, group sarama.ConsumerGroup, topic string, rec recorder) *Consumer {
	log := logger.With("adapter", "kafka")
	return &Consumer{
		log:     log,
		group:   group,
		topic:   topic,
		handler: &groupHandler{log: log, rec: rec},
	}
}

// Run consumes until ctx is cancelled or the group is closed. Each rebalance
// starts a new session.
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.Error("kafka consumer error", slog.String("error", err.Error()))
		}
	}()

	c.log.Info("kafka consumer started", slog.String("topic", c.topic))
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("kafka consume: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close leaves the group.
func (c *Consumer) Close() error {
	return c.group.Close()
}
