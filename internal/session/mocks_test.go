package session_test

import (
	"context"
	"smartsociety/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

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
