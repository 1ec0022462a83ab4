package events

import (
	"context"
	"sync"
	"time"
)

type Type string

const (
	BookingRequested  Type = "booking.requested"
	BookingAccepted   Type = "booking.accepted"
	BookingRejected   Type = "booking.rejected"
	ProfileUpdated    Type = "profile.updated"
	SessionRegistered Type = "session.registered"
)

const activitySchemaVersion = "1"

// Event is one user action worth announcing to other services.
type Event struct {
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	ActorID    int64     `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher announces events. Implementations never fail the caller: a
// publish problem is theirs to log.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}
