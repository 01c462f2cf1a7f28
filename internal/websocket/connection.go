package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/service"
	"github.com/bigcv/neo-livechat/pkg/bot"

	"github.com/google/uuid"
)

// State tracks where a live connection sits in the session protocol.
type State int

const (
	StateConnected State = iota
	StateInitializing
	StateBound
	StateClosed
)

const (
	typingPerChar  = 20 * time.Millisecond
	typingDelayMin = 500 * time.Millisecond
	typingDelayMax = 2 * time.Second
)

const escalationNotice = "I understand you'd like to speak with a human agent. A member of our team will follow up with you shortly."

// Pusher delivers one outbound event to a single transport connection.
// Implementations must tolerate delivery after the transport has closed.
type Pusher interface {
	Push(event interface{}) error
}

// Connection drives the per-connection protocol state machine: Connected on
// transport open, Initializing while session resolution is in flight, Bound
// once a session is attached, Closed when the transport goes away.
//
// Connection state lives only in memory. Reconnection re-derives everything
// from the visitor identity carried in the next init frame.
type Connection struct {
	Id uuid.UUID

	store     service.IChatStore
	responder *bot.Responder
	push      Pusher
	logger    logger.ILogger

	mu          sync.Mutex
	state       State
	session     *entity.ChatSession
	customer    *entity.Customer
	connectedAt time.Time

	now      func() time.Time
	schedule func(d time.Duration, fn func())
}

func NewConnection(store service.IChatStore, responder *bot.Responder, push Pusher, log logger.ILogger) *Connection {
	return &Connection{
		Id:        uuid.New(),
		store:     store,
		responder: responder,
		push:      push,
		logger:    log,
		state:     StateConnected,
		now:       time.Now,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Open announces the fresh connection to the client.
func (c *Connection) Open() {
	c.mu.Lock()
	c.connectedAt = c.now()
	c.mu.Unlock()

	c.send(connectedEvent{
		Type:         "connected",
		ConnectionId: c.Id.String(),
		Timestamp:    c.now(),
	})
}

// State returns the connection's current protocol state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleInbound dispatches one raw client frame. Malformed payloads surface
// an error event; unknown types are logged and ignored.
func (c *Connection) HandleInbound(ctx context.Context, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("Connection", "Malformed inbound frame", map[string]interface{}{
			"connection_id": c.Id,
			"error":         err.Error(),
		})
		c.sendError("Invalid message format")
		return
	}

	switch env.Type {
	case inboundInit:
		c.handleInit(ctx, &env)
	case inboundMessage:
		c.handleChatMessage(ctx, &env)
	case inboundPing:
		c.send(pongEvent{Type: "pong"})
	default:
		c.logger.Debug("Connection", "Ignoring unknown frame type", map[string]interface{}{
			"connection_id": c.Id,
			"type":          env.Type,
		})
	}
}

// handleInit binds the connection to a conversation session. The visitor
// identity rides in the init frame's sessionId field; the session is found or
// reactivated per the recency rule, so a returning visitor keeps their
// thread. Any persistence failure leaves the connection unbound and the
// client free to retry.
func (c *Connection) handleInit(ctx context.Context, env *Envelope) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateInitializing
	c.mu.Unlock()

	customer, err := c.store.GetOrCreateCustomer(ctx, env.CustomerId)
	if err != nil {
		c.logger.Error("Connection", "Customer resolution failed", map[string]interface{}{
			"connection_id": c.Id,
			"customer":      env.CustomerId,
			"error":         err.Error(),
		})
		c.failInit()
		return
	}

	session, err := c.store.GetOrCreateSessionByVisitor(ctx, customer.Id, env.SessionId)
	if err != nil {
		c.logger.Error("Connection", "Session resolution failed", map[string]interface{}{
			"connection_id": c.Id,
			"visitor_id":    env.SessionId,
			"error":         err.Error(),
		})
		c.failInit()
		return
	}

	messages, err := c.store.GetSessionMessages(ctx, session.Id, 0)
	if err != nil {
		c.logger.Error("Connection", "History load failed", map[string]interface{}{
			"connection_id": c.Id,
			"session_id":    session.Id,
			"error":         err.Error(),
		})
		c.failInit()
		return
	}

	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.session = session
	c.customer = customer
	c.state = StateBound
	c.mu.Unlock()

	c.store.SaveAnalyticsEvent(ctx, customer.Id, entity.EventChatStarted, map[string]interface{}{
		"session_id": session.Id.String(),
		"visitor_id": session.VisitorId,
	})

	// Storage hands back newest first; the client wants oldest first.
	history := make([]historyMessage, len(messages))
	for i, msg := range messages {
		history[len(messages)-1-i] = historyMessage{
			Id:         msg.Id.String(),
			SenderType: string(msg.SenderType),
			Content:    msg.Content,
			Timestamp:  msg.CreatedAt,
		}
	}

	c.send(initializedEvent{
		Type:      "initialized",
		SessionId: session.Id.String(),
		History:   history,
		Timestamp: c.now(),
	})

	c.logger.Info("Connection", "Session bound", map[string]interface{}{
		"connection_id": c.Id,
		"session_id":    session.Id,
		"history_len":   len(messages),
	})
}

func (c *Connection) failInit() {
	c.mu.Lock()
	if c.state != StateClosed {
		c.state = StateConnected
	}
	c.mu.Unlock()
	c.sendError("Failed to initialize session")
}

// handleChatMessage runs one chat turn: persist the visitor message, generate
// a reply with recent history as context, push an immediate escalation
// notification when warranted, then deliver the reply behind a simulated
// typing delay proportional to its length.
func (c *Connection) handleChatMessage(ctx context.Context, env *Envelope) {
	c.mu.Lock()
	state := c.state
	session := c.session
	customer := c.customer
	c.mu.Unlock()

	if state != StateBound {
		c.sendError("Session not initialized")
		return
	}

	sentiment := bot.AnalyzeSentiment(env.Content)
	needsAgent := bot.NeedsHumanAgent(env.Content, sentiment)

	if _, err := c.store.SaveMessage(ctx, session.Id, entity.SenderTypeVisitor, session.VisitorId, env.Content, &entity.MessageMetadata{
		Sentiment:  sentiment,
		NeedsAgent: needsAgent,
	}); err != nil {
		c.logger.Error("Connection", "Failed to persist visitor message", map[string]interface{}{
			"connection_id": c.Id,
			"session_id":    session.Id,
			"error":         err.Error(),
		})
		c.sendError("Failed to process message")
		return
	}

	recent, err := c.store.GetSessionMessages(ctx, session.Id, 10)
	if err != nil {
		// Context only sharpens replies; a reply still goes out without it.
		c.logger.Warn("Connection", "Failed to load reply context", map[string]interface{}{
			"connection_id": c.Id,
			"session_id":    session.Id,
			"error":         err.Error(),
		})
	}
	history := make([]string, len(recent))
	for i, msg := range recent {
		history[i] = msg.Content
	}

	result := c.responder.GenerateResponse(env.Content, session.Id.String(), history)

	c.store.SaveAnalyticsEvent(ctx, customer.Id, entity.EventMessageReceived, map[string]interface{}{
		"session_id": session.Id.String(),
		"intent":     result.Intent,
		"confidence": result.Confidence,
		"sentiment":  sentiment,
	})

	if needsAgent {
		c.send(notificationEvent{
			Type:       "notification",
			Message:    escalationNotice,
			NeedsAgent: true,
		})
		c.store.SaveAnalyticsEvent(ctx, customer.Id, entity.EventEscalationRequested, map[string]interface{}{
			"session_id": session.Id.String(),
			"sentiment":  sentiment,
		})
	}

	c.send(typingEvent{Type: "typing", IsTyping: true})

	delay := typingDelay(len(result.Response))
	metadata := &entity.MessageMetadata{
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Sentiment:  sentiment,
		NeedsAgent: needsAgent,
	}
	c.schedule(delay, func() {
		c.deliverReply(ctx, session.Id, result.Response, metadata)
	})
}

// deliverReply fires on the typing timer. The write is best effort: the
// visitor gets the payload even when the durable save fails, and a timer
// landing on an already-closed connection is discarded without complaint.
func (c *Connection) deliverReply(ctx context.Context, sessionID uuid.UUID, response string, metadata *entity.MessageMetadata) {
	c.mu.Lock()
	closed := c.state == StateClosed
	c.mu.Unlock()
	if closed {
		return
	}

	reply := &entity.Message{
		Id:         uuid.New(),
		SessionId:  sessionID,
		SenderType: entity.SenderTypeBot,
		SenderId:   service.BotSenderID,
		Content:    response,
		CreatedAt:  c.now(),
	}
	if saved, err := c.store.SaveMessage(ctx, sessionID, entity.SenderTypeBot, service.BotSenderID, response, metadata); err != nil {
		c.logger.Error("Connection", "Failed to persist bot reply", map[string]interface{}{
			"connection_id": c.Id,
			"session_id":    sessionID,
			"error":         err.Error(),
		})
	} else {
		reply = saved
	}

	c.send(typingEvent{Type: "typing", IsTyping: false})
	c.send(messageEvent{
		Type:      "message",
		Id:        reply.Id.String(),
		Message:   response,
		Timestamp: reply.CreatedAt,
		Metadata: map[string]interface{}{
			"intent":     metadata.Intent,
			"confidence": metadata.Confidence,
			"sentiment":  metadata.Sentiment,
			"needsAgent": metadata.NeedsAgent,
		},
	})
}

// Close marks the connection terminal. The conversation session stays active:
// a disconnect is treated as transient, and the visitor's next init picks the
// same session back up.
func (c *Connection) Close(ctx context.Context) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	wasBound := c.state == StateBound
	session := c.session
	customer := c.customer
	connectedAt := c.connectedAt
	c.state = StateClosed
	c.mu.Unlock()

	if wasBound {
		c.store.SaveAnalyticsEvent(ctx, customer.Id, entity.EventChatPaused, map[string]interface{}{
			"session_id":       session.Id.String(),
			"duration_seconds": c.now().Sub(connectedAt).Seconds(),
		})
	}
}

func (c *Connection) send(event interface{}) {
	if err := c.push.Push(event); err != nil {
		c.logger.Debug("Connection", "Dropped outbound event", map[string]interface{}{
			"connection_id": c.Id,
			"error":         err.Error(),
		})
	}
}

func (c *Connection) sendError(message string) {
	c.send(errorEvent{Type: "error", Error: message})
}

// typingDelay simulates typing speed: 20ms per character, clamped so short
// replies still pause and long ones don't stall the conversation.
func typingDelay(replyLen int) time.Duration {
	d := time.Duration(replyLen) * typingPerChar
	if d < typingDelayMin {
		return typingDelayMin
	}
	if d > typingDelayMax {
		return typingDelayMax
	}
	return d
}
