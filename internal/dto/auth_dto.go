package dto

import "time"

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"companyName" validate:"omitempty,max=255"`
	WebsiteURL  string `json:"websiteUrl" validate:"omitempty,url"`
}

type RegisterResponse struct {
	CustomerId  string     `json:"customerId"`
	Email       string     `json:"email"`
	Plan        string     `json:"plan"`
	TrialEndsAt *time.Time `json:"trialEndsAt,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	CustomerId string    `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Plan       string    `json:"plan"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type CreateAPIKeyRequest struct {
	KeyName string `json:"keyName" validate:"required,min=1,max=100"`
}

type APIKeyResponse struct {
	Id        string     `json:"id"`
	KeyName   string     `json:"keyName"`
	APIKey    string     `json:"apiKey"`
	IsActive  bool       `json:"isActive"`
	LastUsed  *time.Time `json:"lastUsed,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
