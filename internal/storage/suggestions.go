package storage

import (
	"context"
	"errors"
	"log"
	"smartsociety/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HasPendingSuggestion reports whether the user already has a suggestion awaiting review.
func (s *Service) HasPendingSuggestion(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Suggestion{}).
		Where("user_id = ? AND status = ?", userID, models.SuggestionPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateSuggestion inserts a pending suggestion with database-assigned timestamps.
func (s *Service) CreateSuggestion(ctx context.Context, sg *models.Suggestion) error {
	sg.Status = models.SuggestionPending
	err := s.DB.WithContext(ctx).
		Omit("CreatedAt", "UpdatedAt", "AdminReply", "RepliedAt", "ReviewedAt").
		Create(sg).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrActiveSubmissionExists
	}
	if err != nil {
		log.Printf("ERROR: Failed to save suggestion for user %s: %v", sg.UserID, err)
		return err
	}

	return s.DB.WithContext(ctx).
		Select("created_at", "updated_at").
		Where("id = ?", sg.ID).
		First(sg).Error
}

// GetSuggestionByID returns the decoded suggestion or ErrNotFound.
func (s *Service) GetSuggestionByID(ctx context.Context, id string) (*models.Suggestion, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var sg models.Suggestion
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&sg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := DecodeSuggestion(&sg); err != nil {
		return nil, err
	}
	return &sg, nil
}

// ListSuggestionsByUser returns the user's suggestions, newest first.
func (s *Service) ListSuggestionsByUser(ctx context.Context, userID string) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&suggestions).Error; err != nil {
		log.Printf("ERROR: Failed to list suggestions for user %s: %v", userID, err)
		return nil, err
	}
	for i := range suggestions {
		if err := DecodeSuggestion(&suggestions[i]); err != nil {
			return nil, err
		}
	}
	return suggestions, nil
}

func (s *Service) UpdatePendingSuggestion(ctx context.Context, id string, upd SuggestionUpdate) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := s.DB.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ? AND status = ?", id, models.SuggestionPending).
		Updates(map[string]interface{}{
			"title":       upd.Title,
			"description": upd.Description,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.missingOrNotPending(ctx, &models.Suggestion{}, id)
	}
	return nil
}

func (s *Service) DeletePendingSuggestion(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := s.DB.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.SuggestionPending).
		Delete(&models.Suggestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.missingOrNotPending(ctx, &models.Suggestion{}, id)
	}
	return nil
}

// MarkSuggestionReviewed is the only administrative transition of a suggestion.
func (s *Service) MarkSuggestionReviewed(ctx context.Context, id string, reply *string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sg models.Suggestion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&sg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if sg.Status != models.SuggestionPending {
			return ErrInvalidStatusTransition
		}

		updates := map[string]interface{}{
			"status":      models.SuggestionReviewed,
			"updated_at":  gorm.Expr("NOW()"),
			"reviewed_at": gorm.Expr("NOW()"),
		}
		if reply != nil {
			updates["admin_reply"] = *reply
			updates["replied_at"] = gorm.Expr("NOW()")
		}
		return tx.Model(&models.Suggestion{}).Where("id = ?", id).Updates(updates).Error
	})
}
