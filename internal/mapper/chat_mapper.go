package mapper

import (
	"encoding/json"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:           s.Id,
		CustomerId:   s.CustomerId,
		VisitorId:    s.VisitorId,
		VisitorName:  s.VisitorName,
		VisitorEmail: s.VisitorEmail,
		Status:       entity.SessionStatus(s.Status),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:           s.Id,
		CustomerId:   s.CustomerId,
		VisitorId:    s.VisitorId,
		VisitorName:  s.VisitorName,
		VisitorEmail: s.VisitorEmail,
		Status:       string(s.Status),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	var metadata *entity.MessageMetadata
	if len(msg.Metadata) > 0 {
		var md entity.MessageMetadata
		if err := json.Unmarshal(msg.Metadata, &md); err == nil {
			metadata = &md
		}
	}
	return &entity.Message{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		SenderType: entity.SenderType(msg.SenderType),
		SenderId:   msg.SenderId,
		Content:    msg.Content,
		Metadata:   metadata,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	var metadata datatypes.JSON
	if msg.Metadata != nil {
		if raw, err := json.Marshal(msg.Metadata); err == nil {
			metadata = raw
		}
	}
	return &model.Message{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		SenderType: string(msg.SenderType),
		SenderId:   msg.SenderId,
		Content:    msg.Content,
		Metadata:   metadata,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
