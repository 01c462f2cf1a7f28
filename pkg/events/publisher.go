package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// AnalyticsTopic is the in-process bus topic analytics events travel on.
const AnalyticsTopic = "ANALYTICS_EVENTS"

// AnalyticsMessage is the wire payload carried over the bus.
type AnalyticsMessage struct {
	CustomerID uuid.UUID              `json:"customer_id"`
	EventType  string                 `json:"event_type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Publisher pushes analytics events onto the gochannel pub/sub. Publishing is
// best-effort: errors are returned for logging but callers must not fail the
// originating chat turn on them.
type Publisher struct {
	pubSub *gochannel.GoChannel
}

func NewPublisher(pubSub *gochannel.GoChannel) *Publisher {
	return &Publisher{pubSub: pubSub}
}

func (p *Publisher) Publish(event AnalyticsEvent) error {
	payload, err := json.Marshal(AnalyticsMessage{
		CustomerID: event.CustomerID,
		EventType:  event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("marshal analytics event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(AnalyticsTopic, msg)
}
