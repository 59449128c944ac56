package complaint_test

import (
	"context"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) HasActiveComplaint(ctx context.Context, userID string, category models.ComplaintCategory) (bool, error) {
	args := m.Called(ctx, userID, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaintsByUser(ctx context.Context, userID string) ([]models.Complaint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdatePendingComplaint(ctx context.Context, id string, upd storage.ComplaintUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockStorage) DeletePendingComplaint(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) SetComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus, reply *string) error {
	args := m.Called(ctx, id, status, reply)
	return args.Error(0)
}

func (m *MockStorage) HasPendingSuggestion(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateSuggestion(ctx context.Context, s *models.Suggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStorage) GetSuggestionByID(ctx context.Context, id string) (*models.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suggestion), args.Error(1)
}

func (m *MockStorage) ListSuggestionsByUser(ctx context.Context, userID string) ([]models.Suggestion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Suggestion), args.Error(1)
}

func (m *MockStorage) UpdatePendingSuggestion(ctx context.Context, id string, upd storage.SuggestionUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockStorage) DeletePendingSuggestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) MarkSuggestionReviewed(ctx context.Context, id string, reply *string) error {
	args := m.Called(ctx, id, reply)
	return args.Error(0)
}
