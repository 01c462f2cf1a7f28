package implementation

import (
	"context"
	"errors"

	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/mapper"
	"github.com/bigcv/neo-livechat/internal/model"
	"github.com/bigcv/neo-livechat/internal/repository/contract"
	"github.com/bigcv/neo-livechat/internal/repository/specification"

	"gorm.io/gorm"
)

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerMapper
}

func NewCustomerRepository(db *gorm.DB) contract.CustomerRepository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerMapper(),
	}
}

func (r *CustomerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *entity.Customer) error {
	m := r.mapper.ToModel(customer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, customer *entity.Customer) error {
	m := r.mapper.ToModel(customer)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	var m model.Customer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CustomerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error) {
	var models []*model.Customer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Customer, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

type CustomerAPIKeyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerMapper
}

func NewCustomerAPIKeyRepository(db *gorm.DB) contract.CustomerAPIKeyRepository {
	return &CustomerAPIKeyRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerMapper(),
	}
}

func (r *CustomerAPIKeyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomerAPIKeyRepositoryImpl) Create(ctx context.Context, key *entity.CustomerAPIKey) error {
	m := r.mapper.APIKeyToModel(key)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*key = *r.mapper.APIKeyToEntity(m)
	return nil
}

func (r *CustomerAPIKeyRepositoryImpl) Update(ctx context.Context, key *entity.CustomerAPIKey) error {
	m := r.mapper.APIKeyToModel(key)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*key = *r.mapper.APIKeyToEntity(m)
	return nil
}

func (r *CustomerAPIKeyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerAPIKey, error) {
	var m model.CustomerAPIKey
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.APIKeyToEntity(&m), nil
}

func (r *CustomerAPIKeyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerAPIKey, error) {
	var models []*model.CustomerAPIKey
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	keys := make([]*entity.CustomerAPIKey, len(models))
	for i, m := range models {
		keys[i] = r.mapper.APIKeyToEntity(m)
	}
	return keys, nil
}
