package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionStatus is the admin-driven lifecycle state of a suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionReviewed SuggestionStatus = "reviewed"
)

// Valid reports whether s is a known suggestion status.
func (s SuggestionStatus) Valid() bool {
	return s == SuggestionPending || s == SuggestionReviewed
}

// Active reports whether the suggestion blocks a new one from the same user.
func (s SuggestionStatus) Active() bool {
	return s == SuggestionPending
}

// Suggestion has the same shape as Complaint without a category.
type Suggestion struct {
	ID          string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string           `gorm:"type:uuid;not null;index:idx_suggestion_owner" json:"userId"`
	UserName    string           `json:"userName"`
	UserEmail   string           `json:"userEmail"`
	HouseNumber string           `json:"houseNumber"`
	Title       string           `gorm:"type:text;not null" json:"title"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Status      SuggestionStatus `gorm:"type:text;not null;default:pending" json:"status"`
	CreatedAt   time.Time        `gorm:"autoCreateTime:false;not null;default:now();index:idx_suggestion_owner,sort:desc" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime:false;not null;default:now()" json:"updatedAt"`
	AdminReply  *string          `gorm:"type:text" json:"adminReply,omitempty"`
	RepliedAt   *time.Time       `json:"repliedAt,omitempty"`
	ReviewedAt  *time.Time       `json:"reviewedAt,omitempty"`
}

// BeforeCreate generates the ID when the caller did not assign one.
func (s *Suggestion) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
