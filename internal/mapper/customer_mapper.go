package mapper

import (
	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	return &entity.Customer{
		Id:                 c.Id,
		Name:               c.Name,
		Email:              c.Email,
		Plan:               entity.CustomerPlan(c.Plan),
		PasswordHash:       c.PasswordHash,
		EmailVerified:      c.EmailVerified,
		CompanyName:        c.CompanyName,
		WebsiteURL:         c.WebsiteURL,
		Timezone:           c.Timezone,
		SubscriptionStatus: entity.SubscriptionStatus(c.SubscriptionStatus),
		TrialEndsAt:        c.TrialEndsAt,
		LastLogin:          c.LastLogin,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}
	return &model.Customer{
		Id:                 c.Id,
		Name:               c.Name,
		Email:              c.Email,
		Plan:               string(c.Plan),
		PasswordHash:       c.PasswordHash,
		EmailVerified:      c.EmailVerified,
		CompanyName:        c.CompanyName,
		WebsiteURL:         c.WebsiteURL,
		Timezone:           c.Timezone,
		SubscriptionStatus: string(c.SubscriptionStatus),
		TrialEndsAt:        c.TrialEndsAt,
		LastLogin:          c.LastLogin,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *CustomerMapper) APIKeyToEntity(k *model.CustomerAPIKey) *entity.CustomerAPIKey {
	if k == nil {
		return nil
	}
	return &entity.CustomerAPIKey{
		Id:         k.Id,
		CustomerId: k.CustomerId,
		KeyName:    k.KeyName,
		APIKey:     k.APIKey,
		IsActive:   k.IsActive,
		LastUsed:   k.LastUsed,
		ExpiresAt:  k.ExpiresAt,
		CreatedAt:  k.CreatedAt,
	}
}

func (m *CustomerMapper) APIKeyToModel(k *entity.CustomerAPIKey) *model.CustomerAPIKey {
	if k == nil {
		return nil
	}
	return &model.CustomerAPIKey{
		Id:         k.Id,
		CustomerId: k.CustomerId,
		KeyName:    k.KeyName,
		APIKey:     k.APIKey,
		IsActive:   k.IsActive,
		LastUsed:   k.LastUsed,
		ExpiresAt:  k.ExpiresAt,
		CreatedAt:  k.CreatedAt,
	}
}
