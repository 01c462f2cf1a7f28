package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string     `gorm:"type:varchar(255);not null"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Plan               string     `gorm:"type:varchar(50);default:'free'"`
	PasswordHash       *string    `gorm:"type:varchar(255)"`
	EmailVerified      bool       `gorm:"default:false"`
	CompanyName        *string    `gorm:"type:varchar(255)"`
	WebsiteURL         *string    `gorm:"type:varchar(500)"`
	Timezone           string     `gorm:"type:varchar(100);default:'UTC'"`
	SubscriptionStatus string     `gorm:"type:varchar(50);default:'trial'"`
	TrialEndsAt        *time.Time
	LastLogin          *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (Customer) TableName() string {
	return "customers"
}

type CustomerAPIKey struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId uuid.UUID  `gorm:"type:uuid;not null;index"`
	KeyName    string     `gorm:"type:varchar(100);not null"`
	APIKey     string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	IsActive   bool       `gorm:"default:true"`
	LastUsed   *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (CustomerAPIKey) TableName() string {
	return "customer_api_keys"
}
