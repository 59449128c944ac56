package storage

import (
	"fmt"
	"smartsociety/backend/internal/models"
)

// Partial unique indexes enforce "at most one active submission" inside the
// database, so two concurrent submits cannot both pass the pre-check.
var activeSubmissionIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_complaint_per_category
		ON complaints (user_id, category)
		WHERE status IN ('pending', 'in_progress')`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_suggestion_per_user
		ON suggestions (user_id)
		WHERE status = 'pending'`,
}

// Migrate creates or updates every table and the active-submission indexes.
func (s *Service) Migrate() error {
	err := s.DB.AutoMigrate(
		&models.Credential{},
		&models.User{},
		&models.Complaint{},
		&models.Suggestion{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range activeSubmissionIndexes {
		if err := s.DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
