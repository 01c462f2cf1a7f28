package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string
type SenderType string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusClosed SessionStatus = "closed"

	SenderTypeVisitor SenderType = "visitor"
	SenderTypeBot     SenderType = "bot"
	SenderTypeAgent   SenderType = "agent"
)

// ChatSession is the durable chat thread between one customer's widget and
// one visitor. At most one session per (customer, visitor) pair is active at
// a time; a closed session revisited within the recency window reactivates
// rather than spawning a duplicate.
type ChatSession struct {
	Id         uuid.UUID
	CustomerId uuid.UUID
	// VisitorId is the opaque client-generated identity, stable across
	// reconnects. It is the sole key for finding a visitor's conversation.
	VisitorId    string
	VisitorName  *string
	VisitorEmail *string
	Status       SessionStatus
	StartedAt    time.Time
	EndedAt      *time.Time
}

// MessageMetadata carries the reply-engine annotations on a bot message.
type MessageMetadata struct {
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Sentiment  string  `json:"sentiment,omitempty"`
	NeedsAgent bool    `json:"needsAgent,omitempty"`
}

// Message is immutable once created and exclusively owned by its session.
type Message struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	SenderType SenderType
	SenderId   string
	Content    string
	Metadata   *MessageMetadata
	CreatedAt  time.Time
}
