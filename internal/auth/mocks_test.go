package auth_test

import (
	"context"
	"smartsociety/backend/internal/models"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify double of auth.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateAccount(ctx context.Context, cred *models.Credential, profile *models.User) error {
	args := m.Called(ctx, cred, profile)
	return args.Error(0)
}

func (m *MockStore) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *MockStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) RegisterFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error) {
	args := m.Called(ctx, email, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) FailedLoginCount(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ResetFailedLogins(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
