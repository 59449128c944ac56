package storage

import (
	"context"
	"errors"
	"log"
	"smartsociety/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeComplaintStatuses = []models.ComplaintStatus{models.ComplaintPending, models.ComplaintInProgress}

// HasActiveComplaint reports whether the user has a pending or in-progress
// complaint in the category.
func (s *Service) HasActiveComplaint(ctx context.Context, userID string, category models.ComplaintCategory) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Complaint{}).
		Where("user_id = ? AND category = ? AND status IN ?", userID, category, activeComplaintStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateComplaint inserts a pending complaint. Creation and update times are
// taken from the database clock. A concurrent active complaint in the same
// category is reported as ErrActiveSubmissionExists.
func (s *Service) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	c.Status = models.ComplaintPending
	err := s.DB.WithContext(ctx).
		Omit("CreatedAt", "UpdatedAt", "AdminReply", "RepliedAt", "ResolvedAt").
		Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrActiveSubmissionExists
	}
	if err != nil {
		log.Printf("ERROR: Failed to save complaint for user %s: %v", c.UserID, err)
		return err
	}

	// Omitted columns are filled by the database; read them back.
	return s.DB.WithContext(ctx).
		Select("created_at", "updated_at").
		Where("id = ?", c.ID).
		First(c).Error
}

// GetComplaintByID returns the decoded complaint or ErrNotFound.
func (s *Service) GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var c models.Complaint
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := DecodeComplaint(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComplaintsByUser returns the user's complaints, newest first.
func (s *Service) ListComplaintsByUser(ctx context.Context, userID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints for user %s: %v", userID, err)
		return nil, err
	}
	for i := range complaints {
		if err := DecodeComplaint(&complaints[i]); err != nil {
			return nil, err
		}
	}
	return complaints, nil
}

// UpdatePendingComplaint rewrites the content of a complaint that is still pending.
func (s *Service) UpdatePendingComplaint(ctx context.Context, id string, upd ComplaintUpdate) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := s.DB.WithContext(ctx).Model(&models.Complaint{}).
		Where("id = ? AND status = ?", id, models.ComplaintPending).
		Updates(map[string]interface{}{
			"category":    upd.Category,
			"title":       upd.Title,
			"description": upd.Description,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrActiveSubmissionExists
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.missingOrNotPending(ctx, &models.Complaint{}, id)
	}
	return nil
}

// DeletePendingComplaint removes a complaint that is still pending.
func (s *Service) DeletePendingComplaint(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := s.DB.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.ComplaintPending).
		Delete(&models.Complaint{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.missingOrNotPending(ctx, &models.Complaint{}, id)
	}
	return nil
}

// SetComplaintStatus applies an administrative status change. A reply, when
// given, is stored with the current database time.
func (s *Service) SetComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus, reply *string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Complaint
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !c.Status.CanTransitionTo(status) {
			return ErrInvalidStatusTransition
		}

		updates := map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		}
		if reply != nil {
			updates["admin_reply"] = *reply
			updates["replied_at"] = gorm.Expr("NOW()")
		}
		if status == models.ComplaintResolved {
			updates["resolved_at"] = gorm.Expr("NOW()")
		}
		return tx.Model(&models.Complaint{}).Where("id = ?", id).Updates(updates).Error
	})
}

// missingOrNotPending explains why a pending-only write touched no rows.
func (s *Service) missingOrNotPending(ctx context.Context, model interface{}, id string) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrNotPending
}
