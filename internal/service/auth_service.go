package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bigcv/neo-livechat/internal/dto"
	"github.com/bigcv/neo-livechat/internal/entity"
	"github.com/bigcv/neo-livechat/internal/repository/specification"
	"github.com/bigcv/neo-livechat/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAPIKey      = errors.New("invalid or inactive API key")
)

const (
	sessionTokenTTL = 7 * 24 * time.Hour
	trialPeriod     = 14 * 24 * time.Hour
	apiKeyPrefix    = "neolivechat_"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateToken(tokenStr string) (uuid.UUID, error)
	CreateAPIKey(ctx context.Context, customerID uuid.UUID, req *dto.CreateAPIKeyRequest) (*dto.APIKeyResponse, error)
	ListAPIKeys(ctx context.Context, customerID uuid.UUID) ([]*dto.APIKeyResponse, error)
	ValidateAPIKey(ctx context.Context, key string) (*entity.Customer, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  []byte
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  []byte(jwtSecret),
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CustomerRepository()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	trialEndsAt := time.Now().Add(trialPeriod)
	customer := &entity.Customer{
		Name:               req.Name,
		Email:              email,
		Plan:               entity.CustomerPlanFree,
		PasswordHash:       &hashStr,
		Timezone:           "UTC",
		SubscriptionStatus: entity.SubscriptionStatusTrial,
		TrialEndsAt:        &trialEndsAt,
	}
	if req.CompanyName != "" {
		customer.CompanyName = &req.CompanyName
	}
	if req.WebsiteURL != "" {
		customer.WebsiteURL = &req.WebsiteURL
	}

	if err := repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return &dto.RegisterResponse{
		CustomerId:  customer.Id.String(),
		Email:       customer.Email,
		Plan:        string(customer.Plan),
		TrialEndsAt: customer.TrialEndsAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CustomerRepository()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	customer, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	if customer == nil || customer.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*customer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(sessionTokenTTL)
	claims := jwt.MapClaims{
		"customer_id": customer.Id.String(),
		"email":       customer.Email,
		"exp":         expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	now := time.Now()
	customer.LastLogin = &now
	if err := repo.Update(ctx, customer); err != nil {
		// Last-login is informational; a failed update does not block login.
		customer.LastLogin = nil
	}

	return &dto.LoginResponse{
		Token:      signed,
		CustomerId: customer.Id.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Plan:       string(customer.Plan),
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *authService) ValidateToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	idStr, ok := claims["customer_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return id, nil
}

func (s *authService) CreateAPIKey(ctx context.Context, customerID uuid.UUID, req *dto.CreateAPIKeyRequest) (*dto.APIKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	key := &entity.CustomerAPIKey{
		CustomerId: customerID,
		KeyName:    req.KeyName,
		APIKey:     apiKeyPrefix + strings.ReplaceAll(uuid.NewString(), "-", ""),
		IsActive:   true,
	}
	if err := uow.CustomerAPIKeyRepository().Create(ctx, key); err != nil {
		return nil, fmt.Errorf("create api key: %w", err)
	}
	return apiKeyToDTO(key), nil
}

func (s *authService) ListAPIKeys(ctx context.Context, customerID uuid.UUID) ([]*dto.APIKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	keys, err := uow.CustomerAPIKeyRepository().FindAll(ctx,
		specification.Filter("customer_id", customerID),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}

	out := make([]*dto.APIKeyResponse, len(keys))
	for i, k := range keys {
		out[i] = apiKeyToDTO(k)
	}
	return out, nil
}

func (s *authService) ValidateAPIKey(ctx context.Context, key string) (*entity.Customer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	apiKey, err := uow.CustomerAPIKeyRepository().FindOne(ctx,
		specification.ByAPIKey{Key: key},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, fmt.Errorf("lookup api key: %w", err)
	}
	if apiKey == nil {
		return nil, ErrInvalidAPIKey
	}

	now := time.Now()
	apiKey.LastUsed = &now
	// Best-effort usage stamp; a failed update does not invalidate the key.
	_ = uow.CustomerAPIKeyRepository().Update(ctx, apiKey)

	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: apiKey.CustomerId})
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	if customer == nil {
		return nil, ErrInvalidAPIKey
	}
	return customer, nil
}

func apiKeyToDTO(k *entity.CustomerAPIKey) *dto.APIKeyResponse {
	return &dto.APIKeyResponse{
		Id:        k.Id.String(),
		KeyName:   k.KeyName,
		APIKey:    k.APIKey,
		IsActive:  k.IsActive,
		LastUsed:  k.LastUsed,
		CreatedAt: k.CreatedAt,
	}
}
