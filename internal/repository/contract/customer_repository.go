package contract

import (
	"context"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/repository/specification"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error)
}

type CustomerAPIKeyRepository interface {
	Create(ctx context.Context, key *entity.CustomerAPIKey) error
	Update(ctx context.Context, key *entity.CustomerAPIKey) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerAPIKey, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerAPIKey, error)
}
