package complaint_test

import (
	"context"
	"fmt"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"
	"sort"
	"sync"
	"time"
)

// memStorage is an in-memory document store with a ticking clock so creation
// times are strictly increasing.
type memStorage struct {
	mu          sync.Mutex
	clock       time.Time
	seq         int
	complaints  map[string]models.Complaint
	suggestions map[string]models.Suggestion
}

func newMemStorage() *memStorage {
	return &memStorage{
		clock:       time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		complaints:  make(map[string]models.Complaint),
		suggestions: make(map[string]models.Suggestion),
	}
}

func (m *memStorage) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStorage) HasActiveComplaint(_ context.Context, userID string, category models.ComplaintCategory) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.complaints {
		if c.UserID == userID && c.Category == category && c.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStorage) CreateComplaint(_ context.Context, c *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	c.ID = fmt.Sprintf("c-%d", m.seq)
	c.Status = models.ComplaintPending
	c.CreatedAt = m.tick()
	c.UpdatedAt = c.CreatedAt
	m.complaints[c.ID] = *c
	return nil
}

func (m *memStorage) GetComplaintByID(_ context.Context, id string) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (m *memStorage) ListComplaintsByUser(_ context.Context, userID string) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStorage) UpdatePendingComplaint(_ context.Context, id string, upd storage.ComplaintUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return storage.ErrNotFound
	}
	if c.Status != models.ComplaintPending {
		return storage.ErrNotPending
	}
	c.Category, c.Title, c.Description = upd.Category, upd.Title, upd.Description
	c.UpdatedAt = m.tick()
	m.complaints[id] = c
	return nil
}

func (m *memStorage) DeletePendingComplaint(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return storage.ErrNotFound
	}
	if c.Status != models.ComplaintPending {
		return storage.ErrNotPending
	}
	delete(m.complaints, id)
	return nil
}

func (m *memStorage) SetComplaintStatus(_ context.Context, id string, status models.ComplaintStatus, reply *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return storage.ErrNotFound
	}
	if !c.Status.CanTransitionTo(status) {
		return storage.ErrInvalidStatusTransition
	}
	now := m.tick()
	c.Status = status
	c.UpdatedAt = now
	if reply != nil {
		c.AdminReply = reply
		c.RepliedAt = &now
	}
	if status == models.ComplaintResolved {
		c.ResolvedAt = &now
	}
	m.complaints[id] = c
	return nil
}

func (m *memStorage) HasPendingSuggestion(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.suggestions {
		if s.UserID == userID && s.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStorage) CreateSuggestion(_ context.Context, s *models.Suggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s.ID = fmt.Sprintf("s-%d", m.seq)
	s.Status = models.SuggestionPending
	s.CreatedAt = m.tick()
	s.UpdatedAt = s.CreatedAt
	m.suggestions[s.ID] = *s
	return nil
}

func (m *memStorage) GetSuggestionByID(_ context.Context, id string) (*models.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &s, nil
}

func (m *memStorage) ListSuggestionsByUser(_ context.Context, userID string) ([]models.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Suggestion
	for _, s := range m.suggestions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStorage) UpdatePendingSuggestion(_ context.Context, id string, upd storage.SuggestionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return storage.ErrNotFound
	}
	if s.Status != models.SuggestionPending {
		return storage.ErrNotPending
	}
	s.Title, s.Description = upd.Title, upd.Description
	s.UpdatedAt = m.tick()
	m.suggestions[id] = s
	return nil
}

func (m *memStorage) DeletePendingSuggestion(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return storage.ErrNotFound
	}
	if s.Status != models.SuggestionPending {
		return storage.ErrNotPending
	}
	delete(m.suggestions, id)
	return nil
}

func (m *memStorage) MarkSuggestionReviewed(_ context.Context, id string, reply *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return storage.ErrNotFound
	}
	if s.Status != models.SuggestionPending {
		return storage.ErrInvalidStatusTransition
	}
	now := m.tick()
	s.Status = models.SuggestionReviewed
	s.UpdatedAt = now
	s.ReviewedAt = &now
	if reply != nil {
		s.AdminReply = reply
		s.RepliedAt = &now
	}
	m.suggestions[id] = s
	return nil
}
