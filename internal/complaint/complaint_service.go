// Package complaint implements the resident side of the complaint and
// suggestion workflow: submission with the one-active-item rule, listing,
// pending-only edits and deletes, and the detail view with its timeline.
// Status changes are never made here; they come from the admin tool.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"
)

var (
	ErrActiveSubmission = errors.New("an active submission already exists")
	ErrNotEditable      = errors.New("submission is no longer pending")
	ErrNotDeletable     = errors.New("submission can no longer be deleted")
	ErrNotOwner         = errors.New("submission belongs to another resident")
	ErrNotFound         = errors.New("submission not found")
	ErrUnknownKind      = errors.New("unknown submission kind")
)

// Store is the document store the workflow runs against.
type Store interface {
	storage.ComplaintStore
	storage.SuggestionStore
}

// Service handles the business logic for complaints and suggestions.
type Service struct {
	Storage Store
}

// NewService creates a new complaint service.
func NewService(s Store) *Service {
	return &Service{Storage: s}
}

// Submit validates in and creates a pending record owned by owner. A complaint
// is refused while the owner has a pending or in-progress one in the same
// category; a suggestion while the owner has any pending suggestion.
func (s *Service) Submit(ctx context.Context, owner *models.User, kind models.Kind, in Input) (*Record, error) {
	if err := in.Validate(kind); err != nil {
		return nil, err
	}

	switch kind {
	case models.KindComplaint:
		return s.submitComplaint(ctx, owner, in)
	case models.KindSuggestion:
		return s.submitSuggestion(ctx, owner, in)
	}
	return nil, ErrUnknownKind
}

func (s *Service) submitComplaint(ctx context.Context, owner *models.User, in Input) (*Record, error) {
	category := models.ComplaintCategory(in.Category)

	active, err := s.Storage.HasActiveComplaint(ctx, owner.UID, category)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrActiveSubmission
	}

	c := &models.Complaint{
		UserID:      owner.UID,
		UserName:    owner.FullName,
		UserEmail:   owner.Email,
		HouseNumber: owner.HouseNumber,
		Category:    category,
		Title:       in.title(),
		Description: in.description(),
		ImageURLs:   in.ImageURLs,
	}
	if err := s.Storage.CreateComplaint(ctx, c); err != nil {
		if errors.Is(err, storage.ErrActiveSubmissionExists) {
			return nil, ErrActiveSubmission
		}
		return nil, err
	}

	log.Printf("INFO: Complaint %s (%s) submitted by %s", c.ID, c.Category, owner.UID)
	return complaintRecord(c), nil
}

func (s *Service) submitSuggestion(ctx context.Context, owner *models.User, in Input) (*Record, error) {
	pending, err := s.Storage.HasPendingSuggestion(ctx, owner.UID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrActiveSubmission
	}

	sg := &models.Suggestion{
		UserID:      owner.UID,
		UserName:    owner.FullName,
		UserEmail:   owner.Email,
		HouseNumber: owner.HouseNumber,
		Title:       in.title(),
		Description: in.description(),
	}
	if err := s.Storage.CreateSuggestion(ctx, sg); err != nil {
		if errors.Is(err, storage.ErrActiveSubmissionExists) {
			return nil, ErrActiveSubmission
		}
		return nil, err
	}

	log.Printf("INFO: Suggestion %s submitted by %s", sg.ID, owner.UID)
	return suggestionRecord(sg), nil
}

// List returns the owner's records of kind, newest first.
func (s *Service) List(ctx context.Context, ownerID string, kind models.Kind) ([]Record, error) {
	switch kind {
	case models.KindComplaint:
		complaints, err := s.Storage.ListComplaintsByUser(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		records := make([]Record, 0, len(complaints))
		for i := range complaints {
			records = append(records, *complaintRecord(&complaints[i]))
		}
		return records, nil
	case models.KindSuggestion:
		suggestions, err := s.Storage.ListSuggestionsByUser(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		records := make([]Record, 0, len(suggestions))
		for i := range suggestions {
			records = append(records, *suggestionRecord(&suggestions[i]))
		}
		return records, nil
	}
	return nil, ErrUnknownKind
}

// FetchDetail loads one of the caller's records together with its timeline.
func (s *Service) FetchDetail(ctx context.Context, callerID string, kind models.Kind, id string) (*Detail, error) {
	rec, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != callerID {
		return nil, ErrNotOwner
	}
	return &Detail{Record: *rec, Timeline: BuildTimeline(rec)}, nil
}

// Edit replaces the content of one of the caller's pending records.
func (s *Service) Edit(ctx context.Context, callerID string, kind models.Kind, id string, in Input) (*Record, error) {
	if err := in.Validate(kind); err != nil {
		return nil, err
	}

	rec, err := s.owned(ctx, callerID, kind, id)
	if err != nil {
		return nil, err
	}
	if !rec.Pending() {
		return nil, ErrNotEditable
	}

	switch kind {
	case models.KindComplaint:
		category := models.ComplaintCategory(in.Category)
		if string(category) != rec.Category {
			active, err := s.Storage.HasActiveComplaint(ctx, callerID, category)
			if err != nil {
				return nil, err
			}
			if active {
				return nil, ErrActiveSubmission
			}
		}
		err = s.Storage.UpdatePendingComplaint(ctx, id, storage.ComplaintUpdate{
			Category:    category,
			Title:       in.title(),
			Description: in.description(),
		})
	case models.KindSuggestion:
		err = s.Storage.UpdatePendingSuggestion(ctx, id, storage.SuggestionUpdate{
			Title:       in.title(),
			Description: in.description(),
		})
	}
	if err != nil {
		return nil, translate(err, ErrNotEditable)
	}

	return s.load(ctx, kind, id)
}

// Delete removes one of the caller's pending records.
func (s *Service) Delete(ctx context.Context, callerID string, kind models.Kind, id string) error {
	rec, err := s.owned(ctx, callerID, kind, id)
	if err != nil {
		return err
	}
	if !rec.Pending() {
		return ErrNotDeletable
	}

	switch kind {
	case models.KindComplaint:
		err = s.Storage.DeletePendingComplaint(ctx, id)
	case models.KindSuggestion:
		err = s.Storage.DeletePendingSuggestion(ctx, id)
	}
	if err != nil {
		return translate(err, ErrNotDeletable)
	}

	log.Printf("INFO: %s %s deleted by its owner", kind, id)
	return nil
}

func (s *Service) owned(ctx context.Context, callerID string, kind models.Kind, id string) (*Record, error) {
	rec, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != callerID {
		return nil, ErrNotOwner
	}
	return rec, nil
}

func (s *Service) load(ctx context.Context, kind models.Kind, id string) (*Record, error) {
	switch kind {
	case models.KindComplaint:
		c, err := s.Storage.GetComplaintByID(ctx, id)
		if err != nil {
			return nil, translate(err, nil)
		}
		return complaintRecord(c), nil
	case models.KindSuggestion:
		sg, err := s.Storage.GetSuggestionByID(ctx, id)
		if err != nil {
			return nil, translate(err, nil)
		}
		return suggestionRecord(sg), nil
	}
	return nil, ErrUnknownKind
}

// translate maps storage errors onto workflow errors. notPending is used when
// the record left the pending state between the read and the write.
func translate(err, notPending error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrActiveSubmissionExists):
		return ErrActiveSubmission
	case notPending != nil && errors.Is(err, storage.ErrNotPending):
		return notPending
	}
	return fmt.Errorf("submission store: %w", err)
}
