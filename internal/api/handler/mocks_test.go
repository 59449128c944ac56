package handler_test

import (
	"context"
	"smartsociety/backend/internal/account"
	"smartsociety/backend/internal/analysis"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/complaint"
	"smartsociety/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockAccounts struct{ mock.Mock }

func (m *MockAccounts) SignUp(ctx context.Context, form account.SignUpForm) (*models.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccounts) Login(ctx context.Context, email, password, deviceID string) (*account.LoginResult, error) {
	args := m.Called(ctx, email, password, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.LoginResult), args.Error(1)
}

func (m *MockAccounts) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockSessions struct{ mock.Mock }

func (m *MockSessions) Verify(ctx context.Context, token string) (*auth.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockSessions) Subscribe(deviceID string) (<-chan auth.Event, func()) {
	args := m.Called(deviceID)
	return args.Get(0).(<-chan auth.Event), args.Get(1).(func())
}

type MockSubmissions struct{ mock.Mock }

func (m *MockSubmissions) Submit(ctx context.Context, owner *models.User, kind models.Kind, in complaint.Input) (*complaint.Record, error) {
	args := m.Called(ctx, owner, kind, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Record), args.Error(1)
}

func (m *MockSubmissions) List(ctx context.Context, ownerID string, kind models.Kind) ([]complaint.Record, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complaint.Record), args.Error(1)
}

func (m *MockSubmissions) FetchDetail(ctx context.Context, callerID string, kind models.Kind, id string) (*complaint.Detail, error) {
	args := m.Called(ctx, callerID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Detail), args.Error(1)
}

func (m *MockSubmissions) Edit(ctx context.Context, callerID string, kind models.Kind, id string, in complaint.Input) (*complaint.Record, error) {
	args := m.Called(ctx, callerID, kind, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Record), args.Error(1)
}

func (m *MockSubmissions) Delete(ctx context.Context, callerID string, kind models.Kind, id string) error {
	return m.Called(ctx, callerID, kind, id).Error(0)
}

type MockDashboards struct{ mock.Mock }

func (m *MockDashboards) Dashboard(ctx context.Context, userID string) (analysis.Summary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(analysis.Summary), args.Error(1)
}

type MockProfiles struct{ mock.Mock }

func (m *MockProfiles) GetUserByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockOnboarding struct{ mock.Mock }

func (m *MockOnboarding) SetOnboardingCompleted(ctx context.Context, deviceID string, done bool) error {
	return m.Called(ctx, deviceID, done).Error(0)
}

func (m *MockOnboarding) HasCompletedOnboarding(ctx context.Context, deviceID string) (bool, error) {
	args := m.Called(ctx, deviceID)
	return args.Bool(0), args.Error(1)
}
