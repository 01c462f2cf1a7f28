package contract

import (
	"context"

	"github.com/bigcv/neo-livechat/internal/entity"
)

type AnalyticsEventRepository interface {
	Create(ctx context.Context, event *entity.AnalyticsEvent) error
}
