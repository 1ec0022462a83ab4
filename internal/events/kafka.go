package events

import (
	"context"

	"servicehub/pkg/kafka"
	"servicehub/pkg/logger"
	"servicehub/pkg/middleware"
)

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher writes events to the activity topic keyed by the entity id.
type KafkaPublisher struct {
	producer messageProducer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer messageProducer, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithEventType(string(event.Type)).
		WithSource(p.source).
		WithSchemaVersion(activitySchemaVersion).
		WithCorrelationID(middleware.GetRequestID(ctx)).
		WithValue(event).
		Build()
	if err != nil {
		p.log.Error("Failed to build activity event",
			"event_type", event.Type,
			"key", event.Key,
			"error", err,
		)
		return
	}

	if err := p.producer.Publish(context.WithoutCancel(ctx), msg); err != nil {
		p.log.Warn("Failed to publish activity event",
			"event_type", event.Type,
			"key", event.Key,
			"error", err,
		)
	}
}
