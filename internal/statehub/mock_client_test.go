package statehub_test

import (
	"context"
	"smartsociety/backend/internal/models"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	deviceID string
	uid      string

	mu        sync.Mutex
	refreshed []string
	pokes     int
	running   bool
	closed    int
}

func newMockClient(deviceID, uid string) *mockClient {
	return &mockClient{deviceID: deviceID, uid: uid}
}

func (c *mockClient) GetDeviceID() string { return c.deviceID }
func (c *mockClient) GetUID() string      { return c.uid }

func (c *mockClient) Refresh(uid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshed = append(c.refreshed, uid)
}

func (c *mockClient) Poke() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pokes++
}

func (c *mockClient) Run() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
}

func (c *mockClient) snapshot() (refreshed []string, pokes int, running bool, closed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.refreshed...), c.pokes, c.running, c.closed
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

type MockOnboarding struct {
	mock.Mock
}

func (m *MockOnboarding) HasCompletedOnboarding(ctx context.Context, deviceID string) (bool, error) {
	args := m.Called(ctx, deviceID)
	return args.Bool(0), args.Error(1)
}
