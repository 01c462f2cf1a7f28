package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bigcv/neo-livechat/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUnderTest() (IAuthService, *fakeUnitOfWork) {
	uow := newFakeUnitOfWork()
	auth := NewAuthService(&fakeFactory{uow: uow}, "test-secret")
	return auth, uow
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Acme Support",
		Email:    "Owner@Acme.COM",
		Password: "correct-horse-battery",
	}
}

func TestRegisterNormalizesEmailAndStartsTrial(t *testing.T) {
	auth, uow := newAuthUnderTest()

	res, err := auth.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.Equal(t, "owner@acme.com", res.Email)
	assert.Equal(t, "free", res.Plan)
	require.NotNil(t, res.TrialEndsAt)
	require.Len(t, uow.customers.created, 1)
	// Password is stored hashed, never verbatim.
	require.NotNil(t, uow.customers.created[0].PasswordHash)
	assert.NotContains(t, *uow.customers.created[0].PasswordHash, "correct-horse")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _ := newAuthUnderTest()
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = auth.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRoundTripsToken(t *testing.T) {
	auth, _ := newAuthUnderTest()
	ctx := context.Background()

	reg, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	res, err := auth.Login(ctx, &dto.LoginRequest{
		Email:    "owner@acme.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, reg.CustomerId, res.CustomerId)

	customerID, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.CustomerId, customerID.String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth, _ := newAuthUnderTest()
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = auth.Login(ctx, &dto.LoginRequest{
		Email:    "owner@acme.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	auth, _ := newAuthUnderTest()

	_, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@acme.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth, _ := newAuthUnderTest()

	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	auth, _ := newAuthUnderTest()
	other := NewAuthService(&fakeFactory{uow: newFakeUnitOfWork()}, "different-secret")
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)
	res, err := auth.Login(ctx, &dto.LoginRequest{Email: "owner@acme.com", Password: "correct-horse-battery"})
	require.NoError(t, err)

	_, err = other.ValidateToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAPIKeyFormat(t *testing.T) {
	auth, uow := newAuthUnderTest()
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)
	customerID := uow.customers.created[0].Id

	key, err := auth.CreateAPIKey(ctx, customerID, &dto.CreateAPIKeyRequest{KeyName: "production"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key.APIKey, "neolivechat_"))
	assert.Len(t, key.APIKey, len("neolivechat_")+32)
	assert.True(t, key.IsActive)
}

func TestValidateAPIKeyResolvesCustomer(t *testing.T) {
	auth, uow := newAuthUnderTest()
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)
	customerID := uow.customers.created[0].Id

	key, err := auth.CreateAPIKey(ctx, customerID, &dto.CreateAPIKeyRequest{KeyName: "production"})
	require.NoError(t, err)

	customer, err := auth.ValidateAPIKey(ctx, key.APIKey)
	require.NoError(t, err)
	assert.Equal(t, customerID, customer.Id)
	// Usage is stamped on successful validation.
	assert.Equal(t, 1, uow.apiKeys.updated)
}

func TestValidateAPIKeyRejectsUnknownAndInactive(t *testing.T) {
	auth, uow := newAuthUnderTest()
	ctx := context.Background()

	_, err := auth.ValidateAPIKey(ctx, "neolivechat_deadbeef")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	_, err = auth.Register(ctx, registerRequest())
	require.NoError(t, err)
	customerID := uow.customers.created[0].Id
	key, err := auth.CreateAPIKey(ctx, customerID, &dto.CreateAPIKeyRequest{KeyName: "production"})
	require.NoError(t, err)

	uow.apiKeys.keys[0].IsActive = false
	_, err = auth.ValidateAPIKey(ctx, key.APIKey)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}
