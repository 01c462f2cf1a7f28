package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/service"
	"github.com/bigcv/neo-livechat/pkg/bot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePusher records every event the connection emits, in order.
type fakePusher struct {
	events []interface{}
}

func (p *fakePusher) Push(event interface{}) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePusher) typesInOrder() []string {
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		data, _ := json.Marshal(event)
		var envelope struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(data, &envelope)
		types = append(types, envelope.Type)
	}
	return types
}

// fakeChatStore is an in-memory stand-in for the persistence collaborator.
type fakeChatStore struct {
	customer  *entity.Customer
	session   *entity.ChatSession
	messages  []*entity.Message
	analytics []string

	failCustomer bool
	failSession  bool
	failSave     bool
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		customer: &entity.Customer{Id: uuid.New(), Name: "Customer acme"},
		session: &entity.ChatSession{
			Id:        uuid.New(),
			VisitorId: "v1",
			Status:    entity.SessionStatusActive,
			StartedAt: time.Now(),
		},
	}
}

func (s *fakeChatStore) GetOrCreateCustomer(ctx context.Context, identifier string) (*entity.Customer, error) {
	if s.failCustomer {
		return nil, errors.New("db down")
	}
	return s.customer, nil
}

func (s *fakeChatStore) CreateChatSession(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error) {
	return s.session, nil
}

func (s *fakeChatStore) GetOrCreateSessionByVisitor(ctx context.Context, customerID uuid.UUID, visitorID string) (*entity.ChatSession, error) {
	if s.failSession {
		return nil, errors.New("db down")
	}
	return s.session, nil
}

func (s *fakeChatStore) GetChatSession(ctx context.Context, sessionID uuid.UUID) (*entity.ChatSession, error) {
	return s.session, nil
}

func (s *fakeChatStore) GetActiveSessions(ctx context.Context, customerID uuid.UUID) ([]*entity.ChatSession, error) {
	return []*entity.ChatSession{s.session}, nil
}

func (s *fakeChatStore) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entity.SessionStatus) (*entity.ChatSession, error) {
	s.session.Status = status
	return s.session, nil
}

func (s *fakeChatStore) SaveMessage(ctx context.Context, sessionID uuid.UUID, senderType entity.SenderType, senderID, content string, metadata *entity.MessageMetadata) (*entity.Message, error) {
	if s.failSave && senderType == entity.SenderTypeBot {
		return nil, errors.New("db down")
	}
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

// GetSessionMessages returns newest first, like the real store.
func (s *fakeChatStore) GetSessionMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entity.Message, error) {
	out := make([]*entity.Message, 0, len(s.messages))
	for i := len(s.messages) - 1; i >= 0; i-- {
		out = append(out, s.messages[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeChatStore) SaveAnalyticsEvent(ctx context.Context, customerID uuid.UUID, eventType string, data map[string]interface{}) {
	s.analytics = append(s.analytics, eventType)
}

var _ service.IChatStore = (*fakeChatStore)(nil)

type scheduledTask struct {
	delay time.Duration
	fn    func()
}

func newTestConnection(store service.IChatStore) (*Connection, *fakePusher, *[]scheduledTask) {
	pusher := &fakePusher{}
	tasks := &[]scheduledTask{}
	conn := NewConnection(store, newTestResponder(), pusher, logger.NewIsolatedLogger(testLogPath()))
	conn.schedule = func(d time.Duration, fn func()) {
		*tasks = append(*tasks, scheduledTask{delay: d, fn: fn})
	}
	return conn, pusher, tasks
}

func newTestResponder() *bot.Responder {
	// Pin the clock to a weekday inside business hours and the choice to the
	// first candidate so replies are deterministic.
	noon := time.Date(2025, 6, 11, 16, 0, 0, 0, time.UTC)
	return bot.NewResponder(&staticTopics{},
		bot.WithClock(func() time.Time { return noon }),
		bot.WithChoice(func(n int) int { return 0 }),
	)
}

type staticTopics struct{}

func (s *staticTopics) Get(sessionID string) (string, bool) { return "", false }
func (s *staticTopics) Save(sessionID, topic string)        {}

func testLogPath() string {
	return "logs/test_chat_stream.log"
}

func initFrame() []byte {
	return []byte(`{"type":"init","customerId":"acme","sessionId":"v1"}`)
}

func messageFrame(content string) []byte {
	raw, _ := json.Marshal(Envelope{Type: "message", Content: content, SessionId: "v1"})
	return raw
}

func TestOpenPushesConnected(t *testing.T) {
	conn, pusher, _ := newTestConnection(newFakeChatStore())

	conn.Open()

	require.Len(t, pusher.events, 1)
	event, ok := pusher.events[0].(connectedEvent)
	require.True(t, ok)
	assert.Equal(t, "connected", event.Type)
	assert.Equal(t, conn.Id.String(), event.ConnectionId)
	assert.Equal(t, StateConnected, conn.State())
}

func TestInitBindsAndReplaysHistoryChronologically(t *testing.T) {
	store := newFakeChatStore()
	ctx := context.Background()
	for _, content := range []string{"A", "B", "C"} {
		_, err := store.SaveMessage(ctx, store.session.Id, entity.SenderTypeVisitor, "v1", content, nil)
		require.NoError(t, err)
	}

	conn, pusher, _ := newTestConnection(store)
	conn.HandleInbound(ctx, initFrame())

	assert.Equal(t, StateBound, conn.State())
	require.Len(t, pusher.events, 1)
	event, ok := pusher.events[0].(initializedEvent)
	require.True(t, ok)
	assert.Equal(t, store.session.Id.String(), event.SessionId)

	got := make([]string, len(event.History))
	for i, msg := range event.History {
		got[i] = msg.Content
	}
	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Contains(t, store.analytics, entity.EventChatStarted)
}

func TestInitWithEmptyHistory(t *testing.T) {
	conn, pusher, _ := newTestConnection(newFakeChatStore())

	conn.HandleInbound(context.Background(), initFrame())

	require.Len(t, pusher.events, 1)
	event := pusher.events[0].(initializedEvent)
	assert.Empty(t, event.History)
}

func TestInitFailureLeavesConnectionUnboundAndRetryable(t *testing.T) {
	store := newFakeChatStore()
	store.failSession = true
	conn, pusher, _ := newTestConnection(store)
	ctx := context.Background()

	conn.HandleInbound(ctx, initFrame())

	assert.Equal(t, StateConnected, conn.State())
	require.Len(t, pusher.events, 1)
	event, ok := pusher.events[0].(errorEvent)
	require.True(t, ok)
	assert.Equal(t, "error", event.Type)

	// The client may retry init once the store recovers.
	store.failSession = false
	conn.HandleInbound(ctx, initFrame())
	assert.Equal(t, StateBound, conn.State())
}

func TestMessageBeforeInitSurfacesError(t *testing.T) {
	conn, pusher, tasks := newTestConnection(newFakeChatStore())

	conn.HandleInbound(context.Background(), messageFrame("hello"))

	assert.Equal(t, StateConnected, conn.State())
	require.Len(t, pusher.events, 1)
	_, ok := pusher.events[0].(errorEvent)
	assert.True(t, ok)
	assert.Empty(t, *tasks)
}

func TestPingRepliesPong(t *testing.T) {
	conn, pusher, _ := newTestConnection(newFakeChatStore())

	conn.HandleInbound(context.Background(), []byte(`{"type":"ping"}`))

	require.Len(t, pusher.events, 1)
	event, ok := pusher.events[0].(pongEvent)
	require.True(t, ok)
	assert.Equal(t, "pong", event.Type)
	assert.Equal(t, StateConnected, conn.State())
}

func TestUnknownFrameTypeIgnored(t *testing.T) {
	conn, pusher, _ := newTestConnection(newFakeChatStore())

	conn.HandleInbound(context.Background(), []byte(`{"type":"presence","content":"x"}`))

	assert.Empty(t, pusher.events)
	assert.Equal(t, StateConnected, conn.State())
}

func TestMalformedFrameSurfacesError(t *testing.T) {
	conn, pusher, _ := newTestConnection(newFakeChatStore())

	conn.HandleInbound(context.Background(), []byte(`{not json`))

	require.Len(t, pusher.events, 1)
	_, ok := pusher.events[0].(errorEvent)
	assert.True(t, ok)
}

func TestChatTurnDeliversDelayedReply(t *testing.T) {
	store := newFakeChatStore()
	conn, pusher, tasks := newTestConnection(store)
	ctx := context.Background()

	conn.HandleInbound(ctx, initFrame())
	conn.HandleInbound(ctx, messageFrame("hello"))

	// Visitor message persisted immediately; typing indicator on.
	require.Len(t, store.messages, 1)
	assert.Equal(t, entity.SenderTypeVisitor, store.messages[0].SenderType)
	types := pusher.typesInOrder()
	require.Equal(t, []string{"initialized", "typing"}, types)
	typing := pusher.events[1].(typingEvent)
	assert.True(t, typing.IsTyping)

	// Reply is scheduled, clamped inside [500ms, 2s].
	require.Len(t, *tasks, 1)
	task := (*tasks)[0]
	assert.GreaterOrEqual(t, task.delay, 500*time.Millisecond)
	assert.LessOrEqual(t, task.delay, 2*time.Second)

	task.fn()

	types = pusher.typesInOrder()
	require.Equal(t, []string{"initialized", "typing", "typing", "message"}, types)
	assert.False(t, pusher.events[2].(typingEvent).IsTyping)

	reply := pusher.events[3].(messageEvent)
	assert.NotEmpty(t, reply.Message)
	assert.Equal(t, "matched", reply.Metadata["intent"])
	assert.Equal(t, 0.9, reply.Metadata["confidence"])

	// Bot reply persisted with the same content.
	require.Len(t, store.messages, 2)
	assert.Equal(t, entity.SenderTypeBot, store.messages[1].SenderType)
	assert.Equal(t, reply.Message, store.messages[1].Content)
	assert.Equal(t, service.BotSenderID, store.messages[1].SenderId)
}

func TestEscalationPushesImmediateNotification(t *testing.T) {
	store := newFakeChatStore()
	conn, pusher, _ := newTestConnection(store)
	ctx := context.Background()

	conn.HandleInbound(ctx, initFrame())
	conn.HandleInbound(ctx, messageFrame("I need to speak to a human"))

	types := pusher.typesInOrder()
	require.Equal(t, []string{"initialized", "notification", "typing"}, types)
	notification := pusher.events[1].(notificationEvent)
	assert.True(t, notification.NeedsAgent)
	assert.Contains(t, store.analytics, entity.EventEscalationRequested)
}

func TestReplyPersistFailureStillDelivers(t *testing.T) {
	store := newFakeChatStore()
	conn, pusher, tasks := newTestConnection(store)
	ctx := context.Background()

	conn.HandleInbound(ctx, initFrame())
	conn.HandleInbound(ctx, messageFrame("hello"))
	store.failSave = true

	require.Len(t, *tasks, 1)
	(*tasks)[0].fn()

	types := pusher.typesInOrder()
	assert.Equal(t, "message", types[len(types)-1])
}

func TestReplyAfterCloseIsDiscarded(t *testing.T) {
	store := newFakeChatStore()
	conn, pusher, tasks := newTestConnection(store)
	ctx := context.Background()

	conn.HandleInbound(ctx, initFrame())
	conn.HandleInbound(ctx, messageFrame("hello"))
	require.Len(t, *tasks, 1)

	conn.Close(ctx)
	eventsBefore := len(pusher.events)
	messagesBefore := len(store.messages)

	(*tasks)[0].fn()

	assert.Len(t, pusher.events, eventsBefore)
	assert.Len(t, store.messages, messagesBefore)
}

func TestCloseAfterBindLogsPausedAnalytics(t *testing.T) {
	store := newFakeChatStore()
	conn, _, _ := newTestConnection(store)
	ctx := context.Background()

	conn.Open()
	conn.HandleInbound(ctx, initFrame())
	conn.Close(ctx)

	assert.Equal(t, StateClosed, conn.State())
	assert.Contains(t, store.analytics, entity.EventChatPaused)
}

func TestCloseBeforeBindSkipsAnalytics(t *testing.T) {
	store := newFakeChatStore()
	conn, _, _ := newTestConnection(store)

	conn.Open()
	conn.Close(context.Background())

	assert.NotContains(t, store.analytics, entity.EventChatPaused)
}

func TestTypingDelayClamp(t *testing.T) {
	tests := []struct {
		name     string
		replyLen int
		want     time.Duration
	}{
		{name: "short reply hits floor", replyLen: 5, want: 500 * time.Millisecond},
		{name: "25 chars lands exactly on floor", replyLen: 25, want: 500 * time.Millisecond},
		{name: "mid-length scales linearly", replyLen: 50, want: 1 * time.Second},
		{name: "long reply hits ceiling", replyLen: 1000, want: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typingDelay(tt.replyLen))
		})
	}
}
