package telemetry

import (
	"context"
	"log"
	"time"
)

// Publisher is the transport the emitter publishes through.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// EventEmitter publishes domain events for account and message
// mutations. Publish failures are logged and dropped; emitting an
// event never affects the HTTP response.
type EventEmitter struct {
	publisher   Publisher
	service     string
	environment string
}

// EventEnvelope wraps a domain event with correlation metadata.
type EventEnvelope struct {
	SchemaVersion int            `json:"schema_version"`
	EventName     string         `json:"event_name"`
	OccurredAt    string         `json:"occurred_at"`
	Service       string         `json:"service"`
	Environment   string         `json:"environment"`
	RequestID     string         `json:"request_id"`
	Payload       map[string]any `json:"payload"`
}

// NewEventEmitter constructs an EventEmitter.
func NewEventEmitter(publisher Publisher, service, environment string) *EventEmitter {
	return &EventEmitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
	}
}

// Emit publishes one event. The routing key is the event name, e.g.
// "message.created". Safe to call on a nil emitter.
func (e *EventEmitter) Emit(ctx context.Context, eventName, requestID string, payload map[string]any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := EventEnvelope{
		SchemaVersion: 1,
		EventName:     eventName,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, eventName, envelope); err != nil {
		log.Printf("event publish failed: event=%s request_id=%s err=%v", eventName, requestID, err)
	}
}
