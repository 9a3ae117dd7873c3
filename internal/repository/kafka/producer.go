// Package kafka publishes enriched results as JSON events.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NordCoder/Coloscope/internal/domain/result"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer struct {
	w     *kafka.Writer
	topic string
	log   *zap.Logger
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
		topic: topic,
		log:   zap.L().With(zap.String("component", "kafka.producer"), zap.String("topic", topic)),
	}
}

func (p *Producer) WithLogger(l *zap.Logger) *Producer {
	if l == nil {
		return p
	}
	cp := *p
	cp.log = l.With(zap.String("component", "kafka.producer"), zap.String("topic", p.topic))
	return &cp
}

var _ result.Events = (*Producer)(nil)

// PublishResult emits one measurement row, keyed by domain:ip so rows
// for the same target land on the same partition.
func (p *Producer) PublishResult(ctx context.Context, r *result.Result) error {
	value, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(r.Domain + ":" + r.IP),
		Value: value,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("write message", zap.Error(err))
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error { return p.w.Close() }
