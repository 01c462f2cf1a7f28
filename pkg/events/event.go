package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat_started").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used across the bus.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// AnalyticsEvent is a BaseEvent scoped to one customer. The chat engine
// publishes these best-effort; delivery never blocks a chat turn.
type AnalyticsEvent struct {
	BaseEvent
	CustomerID uuid.UUID
}

func NewAnalyticsEvent(customerID uuid.UUID, eventType string, data map[string]interface{}) AnalyticsEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	return AnalyticsEvent{
		BaseEvent: BaseEvent{
			Type:       eventType,
			Data:       data,
			OccurredAt: time.Now(),
		},
		CustomerID: customerID,
	}
}
