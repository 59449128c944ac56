// Package analysis computes the dashboard figures of a resident from their
// own complaints and suggestions.
package analysis

import (
	"context"
	"smartsociety/backend/internal/models"
	"time"
)

// Source is the part of the document store the dashboard reads.
type Source interface {
	ListComplaintsByUser(ctx context.Context, userID string) ([]models.Complaint, error)
	ListSuggestionsByUser(ctx context.Context, userID string) ([]models.Suggestion, error)
}

// Summary is the resident dashboard.
type Summary struct {
	OpenComplaints      int                              `json:"openComplaints"`
	ResolvedComplaints  int                              `json:"resolvedComplaints"`
	PendingSuggestions  int                              `json:"pendingSuggestions"`
	ReviewedSuggestions int                              `json:"reviewedSuggestions"`
	ByCategory          map[models.ComplaintCategory]int `json:"byCategory"`
	// LastActivity is the latest create or update time over all records.
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}

// Summarize folds the records into a Summary. Open complaints are the
// pending and in-progress ones.
func Summarize(complaints []models.Complaint, suggestions []models.Suggestion) Summary {
	s := Summary{ByCategory: make(map[models.ComplaintCategory]int)}
	var last time.Time

	for _, c := range complaints {
		if c.Status.Active() {
			s.OpenComplaints++
			s.ByCategory[c.Category]++
		} else if c.Status == models.ComplaintResolved {
			s.ResolvedComplaints++
		}
		if c.UpdatedAt.After(last) {
			last = c.UpdatedAt
		}
		if c.CreatedAt.After(last) {
			last = c.CreatedAt
		}
	}

	for _, sg := range suggestions {
		switch sg.Status {
		case models.SuggestionPending:
			s.PendingSuggestions++
		case models.SuggestionReviewed:
			s.ReviewedSuggestions++
		}
		if sg.UpdatedAt.After(last) {
			last = sg.UpdatedAt
		}
		if sg.CreatedAt.After(last) {
			last = sg.CreatedAt
		}
	}

	if !last.IsZero() {
		s.LastActivity = &last
	}
	return s
}

// Service builds dashboards from the store.
type Service struct {
	Source Source
}

func NewService(src Source) *Service {
	return &Service{Source: src}
}

// Dashboard loads the resident's records and summarizes them.
func (s *Service) Dashboard(ctx context.Context, userID string) (Summary, error) {
	complaints, err := s.Source.ListComplaintsByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	suggestions, err := s.Source.ListSuggestionsByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(complaints, suggestions), nil
}
