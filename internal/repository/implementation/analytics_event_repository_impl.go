package implementation

import (
	"context"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/mapper"
	"github.com/bigcv/neo-livechat/internal/repository/contract"

	"gorm.io/gorm"
)

type AnalyticsEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalyticsMapper
}

func NewAnalyticsEventRepository(db *gorm.DB) contract.AnalyticsEventRepository {
	return &AnalyticsEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalyticsMapper(),
	}
}

func (r *AnalyticsEventRepositoryImpl) Create(ctx context.Context, event *entity.AnalyticsEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}
