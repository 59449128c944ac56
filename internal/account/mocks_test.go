package account_test

import (
	"context"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) CreateAccount(ctx context.Context, email, password string, profile *models.User) (string, error) {
	args := m.Called(ctx, email, password, profile)
	return args.String(0), args.Error(1)
}

func (m *MockAuth) SignIn(ctx context.Context, email, password, deviceID string) (*auth.Session, error) {
	args := m.Called(ctx, email, password, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuth) SignOut(ctx context.Context, sess *auth.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockAuth) Verify(ctx context.Context, token string) (*auth.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) GetUserByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
