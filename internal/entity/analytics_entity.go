package entity

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event types emitted by the realtime engine.
const (
	EventChatStarted         = "chat_started"
	EventChatPaused          = "chat_paused"
	EventMessageReceived     = "message_received"
	EventEscalationRequested = "escalation_requested"
)

// AnalyticsEvent is best-effort telemetry; writes never affect chat flow.
type AnalyticsEvent struct {
	Id         uuid.UUID
	CustomerId uuid.UUID
	EventType  string
	EventData  map[string]interface{}
	CreatedAt  time.Time
}
