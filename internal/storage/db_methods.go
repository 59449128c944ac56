package storage

import (
	"context"
	"errors"
	"log"
	"smartsociety/backend/internal/models"

	"gorm.io/gorm"
)

// CreateAccount stores the credential and the profile in one transaction so a
// profile exists exactly when its credential does.
func (s *Service) CreateAccount(ctx context.Context, cred *models.Credential, profile *models.User) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		profile.UID = cred.UID
		return tx.Create(profile).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if err != nil {
		log.Printf("ERROR: Failed to create account for %s: %v", cred.Email, err)
		return err
	}

	log.Printf("INFO: New account %s created, awaiting approval.", profile.UID)
	return nil
}

// GetCredentialByEmail returns ErrNotFound when no account uses the email.
func (s *Service) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// GetUserByID returns the decoded profile or ErrNotFound.
func (s *Service) GetUserByID(ctx context.Context, uid string) (*models.User, error) {
	if !validID(uid) {
		return nil, ErrNotFound
	}
	var user models.User
	err := s.DB.WithContext(ctx).Where("uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := DecodeUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserFlags changes the lifecycle flags and announces the change.
func (s *Service) SetUserFlags(ctx context.Context, uid string, flags UserFlags) error {
	if !validID(uid) {
		return ErrNotFound
	}
	updates := map[string]interface{}{
		"updated_at": gorm.Expr("NOW()"),
	}
	if flags.IsActive != nil {
		updates["is_active"] = *flags.IsActive
	}
	if flags.IsApproved != nil {
		updates["is_approved"] = *flags.IsApproved
	}

	result := s.DB.WithContext(ctx).Model(&models.User{}).Where("uid = ?", uid).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := s.PublishProfileChange(ctx, uid); err != nil {
		log.Printf("WARN: Profile %s changed but notification failed: %v", uid, err)
	}
	return nil
}

// ListUnapprovedUsers returns accounts still waiting for approval, oldest first.
func (s *Service) ListUnapprovedUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
