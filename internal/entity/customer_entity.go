package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomerPlan string
type SubscriptionStatus string

const (
	CustomerPlanFree     CustomerPlan = "free"
	CustomerPlanPro      CustomerPlan = "pro"
	CustomerPlanBusiness CustomerPlan = "business"

	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

type Customer struct {
	Id                 uuid.UUID
	Name               string
	Email              string
	Plan               CustomerPlan
	PasswordHash       *string
	EmailVerified      bool
	CompanyName        *string
	WebsiteURL         *string
	Timezone           string
	SubscriptionStatus SubscriptionStatus
	TrialEndsAt        *time.Time
	LastLogin          *time.Time
	CreatedAt          time.Time
}

type CustomerAPIKey struct {
	Id         uuid.UUID
	CustomerId uuid.UUID
	KeyName    string
	APIKey     string
	IsActive   bool
	LastUsed   *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}
