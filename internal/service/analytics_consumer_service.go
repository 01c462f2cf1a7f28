package service

import (
	"context"
	"encoding/json"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/repository/unitofwork"
	"github.com/bigcv/neo-livechat/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAnalyticsConsumer interface {
	Consume(ctx context.Context) error
}

// analyticsConsumerService drains the analytics topic and persists events.
// Every failure path acks and logs: an analytics write must never be retried
// at the cost of blocking the bus, and never surfaces to chat handling.
type analyticsConsumerService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAnalyticsConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAnalyticsConsumer {
	return &analyticsConsumerService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *analyticsConsumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, events.AnalyticsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *analyticsConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload events.AnalyticsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Warn("AnalyticsConsumer", "Dropping malformed analytics message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	event := &entity.AnalyticsEvent{
		CustomerId: payload.CustomerID,
		EventType:  payload.EventType,
		EventData:  payload.Data,
		CreatedAt:  payload.OccurredAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnalyticsEventRepository().Create(ctx, event); err != nil {
		s.logger.Warn("AnalyticsConsumer", "Failed to persist analytics event", map[string]interface{}{
			"event_type": payload.EventType,
			"error":      err.Error(),
		})
	}
}
