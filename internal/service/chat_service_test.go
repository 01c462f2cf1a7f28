package service

import (
	"context"
	"testing"
	"time"

	"github.com/bigcv/neo-livechat/internal/dto"
	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/pkg/bot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memChatStore backs IChatService tests without a database.
type memChatStore struct {
	session   *entity.ChatSession
	messages  []*entity.Message
	analytics []string
}

func newMemChatStore() *memChatStore {
	return &memChatStore{
		session: &entity.ChatSession{
			Id:        uuid.New(),
			VisitorId: "v1",
			Status:    entity.SessionStatusActive,
			StartedAt: time.Now(),
		},
	}
}

func (s *memChatStore) GetOrCreateCustomer(ctx context.Context, identifier string) (*entity.Customer, error) {
	return &entity.Customer{Id: uuid.New()}, nil
}

func (s *memChatStore) CreateChatSession(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error) {
	return s.session, nil
}

func (s *memChatStore) GetOrCreateSessionByVisitor(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error) {
	return s.session, nil
}

func (s *memChatStore) GetChatSession(ctx context.Context, sessionID uuid.UUID) (*entity.ChatSession, error) {
	return s.session, nil
}

func (s *memChatStore) GetActiveSessions(ctx context.Context, customerID uuid.UUID) ([]*entity.ChatSession, error) {
	return []*entity.ChatSession{s.session}, nil
}

func (s *memChatStore) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entity.SessionStatus) (*entity.ChatSession, error) {
	s.session.Status = status
	return s.session, nil
}

func (s *memChatStore) SaveMessage(ctx context.Context, sessionID uuid.UUID, senderType entity.SenderType, senderID, content string, metadata *entity.MessageMetadata) (*entity.Message, error) {
	msg := &entity.Message{
		Id:         uuid.New(),
		SessionId:  sessionID,
		SenderType: senderType,
		SenderId:   senderID,
		Content:    content,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *memChatStore) GetSessionMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entity.Message, error) {
	out := make([]*entity.Message, 0, len(s.messages))
	for i := len(s.messages) - 1; i >= 0; i-- {
		out = append(out, s.messages[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memChatStore) SaveAnalyticsEvent(ctx context.Context, customerID uuid.UUID, eventType string, data map[string]interface{}) {
	s.analytics = append(s.analytics, eventType)
}

func newChatServiceUnderTest() (IChatService, *memChatStore) {
	store := newMemChatStore()
	noon := time.Date(2025, 6, 11, 16, 0, 0, 0, time.UTC)
	responder := bot.NewResponder(&nullTopics{},
		bot.WithClock(func() time.Time { return noon }),
		bot.WithChoice(func(n int) int { return 0 }),
	)
	svc := NewChatService(store, responder, logger.NewIsolatedLogger("logs/test_chat.log"))
	return svc, store
}

type nullTopics struct{}

func (n *nullTopics) Get(sessionID string) (string, bool) { return "", false }
func (n *nullTopics) Save(sessionID, topic string)        {}

func TestSendChatPersistsBothSidesOfTurn(t *testing.T) {
	svc, store := newChatServiceUnderTest()
	customer := &entity.Customer{Id: uuid.New()}

	res, err := svc.SendChat(context.Background(), customer, &dto.SendChatRequest{
		Message:   "hello",
		SessionId: "v1",
	})

	require.NoError(t, err)
	assert.Equal(t, store.session.Id.String(), res.SessionId)
	assert.Equal(t, "hello", res.Message)
	assert.NotEmpty(t, res.Response)

	require.Len(t, store.messages, 2)
	assert.Equal(t, entity.SenderTypeVisitor, store.messages[0].SenderType)
	assert.Equal(t, entity.SenderTypeBot, store.messages[1].SenderType)
	assert.Equal(t, res.Response, store.messages[1].Content)
	require.NotNil(t, store.messages[1].Metadata)
	assert.Equal(t, "matched", store.messages[1].Metadata.Intent)

	assert.Contains(t, store.analytics, entity.EventMessageReceived)
}

func TestSendChatGeneratesVisitorIDWhenAbsent(t *testing.T) {
	svc, store := newChatServiceUnderTest()
	customer := &entity.Customer{Id: uuid.New()}

	_, err := svc.SendChat(context.Background(), customer, &dto.SendChatRequest{Message: "hi"})

	require.NoError(t, err)
	// The visitor message carries a generated identity, not an empty one.
	require.Len(t, store.messages, 2)
	assert.NotEmpty(t, store.messages[0].SenderId)
}

func TestGetSessionMessagesReturnsChronologicalOrder(t *testing.T) {
	svc, store := newChatServiceUnderTest()
	ctx := context.Background()
	for _, content := range []string{"first", "second", "third"} {
		_, err := store.SaveMessage(ctx, store.session.Id, entity.SenderTypeVisitor, "v1", content, nil)
		require.NoError(t, err)
	}

	messages, err := svc.GetSessionMessages(ctx, store.session.Id)

	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestUpdateSessionStatusViaService(t *testing.T) {
	svc, store := newChatServiceUnderTest()

	session, err := svc.UpdateSessionStatus(context.Background(), store.session.Id, entity.SessionStatusClosed)

	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusClosed), session.Status)
}
