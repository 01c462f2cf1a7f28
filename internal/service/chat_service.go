package service

import (
	"context"
	"fmt"

	"github.com/bigcv/neo-livechat/internal/dto"
	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/pkg/bot"

	"github.com/google/uuid"
)

// BotSenderID identifies the automated responder in persisted messages.
const BotSenderID = "ai-assistant"

// historyContextLimit is how many recent messages are loaded as context for
// one reply turn.
const historyContextLimit = 10

type IChatService interface {
	SendChat(ctx context.Context, customer *entity.Customer, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetActiveSessions(ctx context.Context, customerID uuid.UUID) ([]*dto.SessionResponse, error)
	GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]*dto.MessageResponse, error)
	UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entity.SessionStatus) (*dto.SessionResponse, error)
}

// chatService is the synchronous REST chat path. It shares the response
// generator with the realtime engine but skips typing-delay simulation.
type chatService struct {
	store     IChatStore
	responder *bot.Responder
	logger    logger.ILogger
}

func NewChatService(store IChatStore, responder *bot.Responder, log logger.ILogger) IChatService {
	return &chatService{
		store:     store,
		responder: responder,
		logger:    log,
	}
}

func (s *chatService) SendChat(ctx context.Context, customer *entity.Customer, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	visitorID := req.SessionId
	if visitorID == "" {
		visitorID = uuid.NewString()
	}

	session, err := s.store.GetOrCreateSessionByVisitor(ctx, customer.Id, visitorID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if _, err := s.store.SaveMessage(ctx, session.Id, entity.SenderTypeVisitor, visitorID, req.Message, nil); err != nil {
		return nil, fmt.Errorf("save visitor message: %w", err)
	}

	history, err := s.store.GetSessionMessages(ctx, session.Id, historyContextLimit)
	if err != nil {
		// Context is an enhancement, not a requirement for a reply.
		s.logger.Warn("ChatService", "Failed to load history context", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	result := s.responder.GenerateResponse(req.Message, session.Id.String(), historyContents(history))
	sentiment := bot.AnalyzeSentiment(req.Message)
	needsAgent := bot.NeedsHumanAgent(req.Message, sentiment)

	metadata := &entity.MessageMetadata{
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Sentiment:  sentiment,
		NeedsAgent: needsAgent,
	}
	reply, err := s.store.SaveMessage(ctx, session.Id, entity.SenderTypeBot, BotSenderID, result.Response, metadata)
	if err != nil {
		return nil, fmt.Errorf("save bot message: %w", err)
	}

	s.store.SaveAnalyticsEvent(ctx, customer.Id, entity.EventMessageReceived, map[string]interface{}{
		"session_id": session.Id.String(),
		"intent":     result.Intent,
		"confidence": result.Confidence,
		"transport":  "rest",
	})

	return &dto.SendChatResponse{
		Id:         reply.Id.String(),
		SessionId:  session.Id.String(),
		CustomerId: customer.Id.String(),
		Message:    req.Message,
		Response:   result.Response,
		Timestamp:  reply.CreatedAt,
	}, nil
}

func (s *chatService) GetActiveSessions(ctx context.Context, customerID uuid.UUID) ([]*dto.SessionResponse, error) {
	sessions, err := s.store.GetActiveSessions(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = sessionToDTO(session)
	}
	return out, nil
}

// GetSessionMessages returns the session's messages in chronological order.
func (s *chatService) GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]*dto.MessageResponse, error) {
	messages, err := s.store.GetSessionMessages(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}

	// Storage returns newest first; reverse for display.
	out := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		out[len(messages)-1-i] = messageToDTO(msg)
	}
	return out, nil
}

func (s *chatService) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entity.SessionStatus) (*dto.SessionResponse, error) {
	session, err := s.store.UpdateSessionStatus(ctx, sessionID, status)
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

func historyContents(messages []*entity.Message) []string {
	contents := make([]string, len(messages))
	for i, msg := range messages {
		contents[i] = msg.Content
	}
	return contents
}

func sessionToDTO(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        s.Id.String(),
		VisitorId: s.VisitorId,
		Status:    string(s.Status),
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
}

func messageToDTO(m *entity.Message) *dto.MessageResponse {
	var metadata map[string]interface{}
	if m.Metadata != nil {
		metadata = map[string]interface{}{
			"intent":     m.Metadata.Intent,
			"confidence": m.Metadata.Confidence,
			"sentiment":  m.Metadata.Sentiment,
			"needsAgent": m.Metadata.NeedsAgent,
		}
	}
	return &dto.MessageResponse{
		Id:         m.Id.String(),
		SenderType: string(m.SenderType),
		SenderId:   m.SenderId,
		Content:    m.Content,
		Metadata:   metadata,
		Timestamp:  m.CreatedAt,
	}
}
