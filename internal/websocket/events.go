package websocket

import "time"

// Envelope is the inbound wire format. Every client frame is a JSON object
// discriminated by Type; fields beyond the discriminator are type-specific.
type Envelope struct {
	Type       string `json:"type"`
	CustomerId string `json:"customerId,omitempty"`
	SessionId  string `json:"sessionId,omitempty"`
	Content    string `json:"content,omitempty"`
}

const (
	inboundInit    = "init"
	inboundMessage = "message"
	inboundPing    = "ping"
)

type connectedEvent struct {
	Type         string    `json:"type"`
	ConnectionId string    `json:"connectionId"`
	Timestamp    time.Time `json:"timestamp"`
}

type initializedEvent struct {
	Type      string           `json:"type"`
	SessionId string           `json:"sessionId"`
	History   []historyMessage `json:"history"`
	Timestamp time.Time        `json:"timestamp"`
}

type historyMessage struct {
	Id         string    `json:"id"`
	SenderType string    `json:"senderType"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

type messageEvent struct {
	Type      string                 `json:"type"`
	Id        string                 `json:"id"`
	Message   string                 `json:"message"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type notificationEvent struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	NeedsAgent bool   `json:"needsAgent"`
}

type typingEvent struct {
	Type     string `json:"type"`
	IsTyping bool   `json:"isTyping"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type pongEvent struct {
	Type string `json:"type"`
}
