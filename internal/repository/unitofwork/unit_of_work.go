package unitofwork

import (
	"context"

	"github.com/bigcv/neo-livechat/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() contract.CustomerRepository
	CustomerAPIKeyRepository() contract.CustomerAPIKeyRepository
	ChatSessionRepository() contract.ChatSessionRepository
	MessageRepository() contract.MessageRepository
	AnalyticsEventRepository() contract.AnalyticsEventRepository
}
