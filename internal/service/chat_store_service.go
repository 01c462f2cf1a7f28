package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/repository/specification"
	"github.com/bigcv/neo-livechat/internal/repository/unitofwork"
	"github.com/bigcv/neo-livechat/pkg/events"

	"github.com/google/uuid"
)

// SessionRecencyWindow bounds how far back a visitor's previous session is
// picked up on reconnect. A session inside the window is reactivated instead
// of duplicated.
const SessionRecencyWindow = 24 * time.Hour

// IChatStore is the persistence collaborator consumed by the realtime engine
// and the REST chat surface. GetSessionMessages returns newest first; callers
// reverse for chronological display. SaveAnalyticsEvent never returns an
// error: analytics is best-effort and must not affect chat flow.
type IChatStore interface {
	GetOrCreateCustomer(ctx context.Context, identifier string) (*entity.Customer, error)
	CreateChatSession(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error)
	GetOrCreateSessionByVisitor(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error)
	GetChatSession(ctx context.Context, sessionID uuid.UUID) (*entity.ChatSession, error)
	GetActiveSessions(ctx context.Context, customerID uuid.UUID) ([]*entity.ChatSession, error)
	UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entity.SessionStatus) (*entity.ChatSession, error)
	SaveMessage(ctx context.Context, sessionID uuid.UUID, senderType entity.SenderType, senderID, content string, metadata *entity.MessageMetadata) (*entity.Message, error)
	GetSessionMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entity.Message, error)
	SaveAnalyticsEvent(ctx context.Context, customerID uuid.UUID, eventType string, data map[string]interface{})
}

type chatStoreService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *events.Publisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewChatStoreService(uowFactory unitofwork.RepositoryFactory, publisher *events.Publisher, log logger.ILogger) IChatStore {
	return &chatStoreService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

func (s *chatStoreService) GetOrCreateCustomer(ctx context.Context, identifier string) (*entity.Customer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CustomerRepository()

	// The externally supplied identifier seeds both the display name and a
	// placeholder email address.
	email := fmt.Sprintf("%s@example.com", identifier)

	customer, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	if customer != nil {
		return customer, nil
	}

	customer = &entity.Customer{
		Name:               fmt.Sprintf("Customer %s", identifier),
		Email:              email,
		Plan:               entity.CustomerPlanFree,
		Timezone:           "UTC",
		SubscriptionStatus: entity.SubscriptionStatusTrial,
	}
	if err := repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *chatStoreService) CreateChatSession(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		CustomerId: customerID,
		VisitorId:  visitorID,
		Status:     entity.SessionStatusActive,
		StartedAt:  s.now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return session, nil
}

// GetOrCreateSessionByVisitor finds the visitor's recent session for this
// customer (active, or started inside the recency window), reactivating a
// closed one rather than spawning a duplicate. Only when no recent session
// exists is a new one created.
func (s *chatStoreService) GetOrCreateSessionByVisitor(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByCustomerID{CustomerID: customerID},
		specification.ByVisitorID{VisitorID: visitorID},
		specification.ActiveOrStartedAfter{Cutoff: s.now().Add(-SessionRecencyWindow)},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if existing != nil {
		if existing.Status != entity.SessionStatusActive {
			return s.UpdateSessionStatus(ctx, existing.Id, entity.SessionStatusActive)
		}
		return existing, nil
	}

	return s.CreateChatSession(ctx, customerID, visitorID)
}

func (s *chatStoreService) GetChatSession(ctx context.Context, sessionID uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
}

func (s *chatStoreService) GetActiveSessions(ctx context.Context, customerID uuid.UUID) ([]*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindAll(ctx,
		specification.ByCustomerID{CustomerID: customerID},
		specification.ByStatus{Status: string(entity.SessionStatusActive)},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
}

func (s *chatStoreService) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entity.SessionStatus) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ChatSessionRepository()

	session, err := repo.FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	session.Status = status
	if status == entity.SessionStatusClosed {
		endedAt := s.now()
		session.EndedAt = &endedAt
	}
	if err := repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	return session, nil
}

func (s *chatStoreService) SaveMessage(ctx context.Context, sessionID uuid.UUID, senderType entity.SenderType, senderID, content string, metadata *entity.MessageMetadata) (*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if senderID == "" {
		senderID = "system"
	}
	message := &entity.Message{
		SessionId:  sessionID,
		SenderType: senderType,
		SenderId:   senderID,
		Content:    content,
		Metadata:   metadata,
		CreatedAt:  s.now(),
	}
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	return message, nil
}

// GetSessionMessages returns up to limit messages, newest first.
func (s *chatStoreService) GetSessionMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entity.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: limit},
	)
}

// SaveAnalyticsEvent publishes the event onto the analytics bus. Failures are
// logged and swallowed.
func (s *chatStoreService) SaveAnalyticsEvent(ctx context.Context, customerID uuid.UUID, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(events.NewAnalyticsEvent(customerID, eventType, data)); err != nil {
		s.logger.Warn("ChatStore", "Failed to publish analytics event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
