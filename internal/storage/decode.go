package storage

import (
	"fmt"
	"smartsociety/backend/internal/models"
)

// DecodeUser checks a profile row before it leaves the storage layer.
func DecodeUser(u *models.User) error {
	if u.UID == "" {
		return fmt.Errorf("%w: user without uid", ErrMalformedRecord)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: user %s has no email", ErrMalformedRecord, u.UID)
	}
	if u.Role != models.RoleResident {
		return fmt.Errorf("%w: user %s has role %q", ErrMalformedRecord, u.UID, u.Role)
	}
	return nil
}

// DecodeComplaint checks a complaint row before it leaves the storage layer.
func DecodeComplaint(c *models.Complaint) error {
	switch {
	case c.ID == "":
		return fmt.Errorf("%w: complaint without id", ErrMalformedRecord)
	case c.UserID == "":
		return fmt.Errorf("%w: complaint %s has no owner", ErrMalformedRecord, c.ID)
	case !c.Category.Valid():
		return fmt.Errorf("%w: complaint %s has category %q", ErrMalformedRecord, c.ID, c.Category)
	case !c.Status.Valid():
		return fmt.Errorf("%w: complaint %s has status %q", ErrMalformedRecord, c.ID, c.Status)
	case c.CreatedAt.IsZero():
		return fmt.Errorf("%w: complaint %s has no creation time", ErrMalformedRecord, c.ID)
	case c.Status == models.ComplaintResolved && c.ResolvedAt == nil:
		return fmt.Errorf("%w: complaint %s resolved without resolvedAt", ErrMalformedRecord, c.ID)
	}
	return nil
}

// DecodeSuggestion checks a suggestion row before it leaves the storage layer.
func DecodeSuggestion(s *models.Suggestion) error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: suggestion without id", ErrMalformedRecord)
	case s.UserID == "":
		return fmt.Errorf("%w: suggestion %s has no owner", ErrMalformedRecord, s.ID)
	case !s.Status.Valid():
		return fmt.Errorf("%w: suggestion %s has status %q", ErrMalformedRecord, s.ID, s.Status)
	case s.CreatedAt.IsZero():
		return fmt.Errorf("%w: suggestion %s has no creation time", ErrMalformedRecord, s.ID)
	case s.Status == models.SuggestionReviewed && s.ReviewedAt == nil:
		return fmt.Errorf("%w: suggestion %s reviewed without reviewedAt", ErrMalformedRecord, s.ID)
	}
	return nil
}
