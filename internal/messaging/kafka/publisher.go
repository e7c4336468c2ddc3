package kafka

import (
	"context"

	segmentio "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
	Close() error
}

type publisher struct {
	writer *segmentio.Writer
	logger *zap.Logger
}

func NewPublisher(brokers []string, logger ...*zap.Logger) Publisher {
	l := zap.L().Named("kafka.publisher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.publisher")
	}

	writer := &segmentio.Writer{
		Addr:         segmentio.TCP(brokers...),
		Balancer:     &segmentio.Hash{},
		RequiredAcks: segmentio.RequireAll,
	}
	return &publisher{writer: writer, logger: l}
}

func (p *publisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, segmentio.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("kafka publish failed",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}

func (p *publisher) Close() error {
	return p.writer.Close()
}
