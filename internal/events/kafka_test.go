package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicehub/pkg/kafka"
	"servicehub/pkg/logger"
	"servicehub/pkg/middleware"
)

type fakeProducer struct {
	messages []kafka.Message
	ctxErrs  []error
	err      error
}

func (p *fakeProducer) Publish(ctx context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	return p.err
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewKafkaPublisher(producer, "gateway", logger.Nop())

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	pub.Publish(ctx, Event{
		Type:       BookingAccepted,
		Key:        "7",
		ActorID:    1,
		OccurredAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
		Payload:    map[string]string{"status": "ACCEPTED"},
	})

	if len(producer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(producer.messages))
	}
	msg := producer.messages[0]

	if msg.Key != "7" {
		t.Errorf("key = %q, want 7", msg.Key)
	}
	if msg.GetEventType() != string(BookingAccepted) {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-42" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}
	if msg.Headers[kafka.HeaderSource] != "gateway" {
		t.Errorf("source = %q", msg.Headers[kafka.HeaderSource])
	}
	if msg.GetEventID() == "" {
		t.Error("expected a generated event id")
	}
	if producer.ctxErrs[0] != nil {
		t.Errorf("publish context was cancelled: %v", producer.ctxErrs[0])
	}

	var decoded Event
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Type != BookingAccepted || decoded.ActorID != 1 {
		t.Errorf("unexpected payload %+v", decoded)
	}
}

func TestKafkaPublisher_FailureIsSwallowed(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	pub := NewKafkaPublisher(producer, "cli", logger.Nop())

	// Must not panic or block; the caller never sees publishing errors.
	pub.Publish(context.Background(), Event{Type: ProfileUpdated, Key: "1", Payload: struct{}{}})

	if len(producer.messages) != 1 {
		t.Errorf("expected one attempt, got %d", len(producer.messages))
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	rec.Publish(context.Background(), Event{Type: BookingRequested})
	rec.Publish(context.Background(), Event{Type: BookingRejected})

	types := rec.Types()
	if len(types) != 2 || types[0] != BookingRequested || types[1] != BookingRejected {
		t.Errorf("types = %v", types)
	}
}
