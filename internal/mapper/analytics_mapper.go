package mapper

import (
	"encoding/json"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/model"

	"gorm.io/datatypes"
)

type AnalyticsMapper struct{}

func NewAnalyticsMapper() *AnalyticsMapper {
	return &AnalyticsMapper{}
}

func (m *AnalyticsMapper) ToEntity(e *model.AnalyticsEvent) *entity.AnalyticsEvent {
	if e == nil {
		return nil
	}
	var data map[string]interface{}
	if len(e.EventData) > 0 {
		_ = json.Unmarshal(e.EventData, &data)
	}
	return &entity.AnalyticsEvent{
		Id:         e.Id,
		CustomerId: e.CustomerId,
		EventType:  e.EventType,
		EventData:  data,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *AnalyticsMapper) ToModel(e *entity.AnalyticsEvent) *model.AnalyticsEvent {
	if e == nil {
		return nil
	}
	var data datatypes.JSON
	if e.EventData != nil {
		if raw, err := json.Marshal(e.EventData); err == nil {
			data = raw
		}
	}
	return &model.AnalyticsEvent{
		Id:         e.Id,
		CustomerId: e.CustomerId,
		EventType:  e.EventType,
		EventData:  data,
		CreatedAt:  e.CreatedAt,
	}
}
