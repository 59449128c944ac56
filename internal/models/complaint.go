package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ComplaintCategory is one of the eight fixed complaint categories.
type ComplaintCategory string

const (
	CategoryElectricity ComplaintCategory = "electricity"
	CategoryWaterSupply ComplaintCategory = "water_supply"
	CategoryGasSupply   ComplaintCategory = "gas_supply"
	CategorySewerage    ComplaintCategory = "sewerage"
	CategorySecurity    ComplaintCategory = "security"
	CategoryMaintenance ComplaintCategory = "maintenance"
	CategoryCleanliness ComplaintCategory = "cleanliness"
	CategoryNoise       ComplaintCategory = "noise"
)

// ComplaintCategories lists every category in display order.
var ComplaintCategories = []ComplaintCategory{
	CategoryElectricity,
	CategoryWaterSupply,
	CategoryGasSupply,
	CategorySewerage,
	CategorySecurity,
	CategoryMaintenance,
	CategoryCleanliness,
	CategoryNoise,
}

// Valid reports whether c is one of ComplaintCategories.
func (c ComplaintCategory) Valid() bool {
	for _, known := range ComplaintCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ComplaintStatus is the admin-driven lifecycle state of a complaint.
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

// Valid reports whether s is a known complaint status.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

// Active reports whether the complaint still counts against the
// one-per-category limit.
func (s ComplaintStatus) Active() bool {
	return s == ComplaintPending || s == ComplaintInProgress
}

// CanTransitionTo reports whether an administrator may move a complaint from s to next.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	switch s {
	case ComplaintPending:
		return next == ComplaintInProgress || next == ComplaintResolved
	case ComplaintInProgress:
		return next == ComplaintResolved
	}
	return false
}

// Complaint is a resident's report against one category. The submitter's name,
// email and house number are copied in at creation time.
type Complaint struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string            `gorm:"type:uuid;not null;index:idx_complaint_owner" json:"userId"`
	UserName    string            `json:"userName"`
	UserEmail   string            `json:"userEmail"`
	HouseNumber string            `json:"houseNumber"`
	Category    ComplaintCategory `gorm:"type:text;not null" json:"category"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Status      ComplaintStatus   `gorm:"type:text;not null;default:pending" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime:false;not null;default:now();index:idx_complaint_owner,sort:desc" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime:false;not null;default:now()" json:"updatedAt"`
	AdminReply  *string           `gorm:"type:text" json:"adminReply,omitempty"`
	RepliedAt   *time.Time        `json:"repliedAt,omitempty"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty"`
	ImageURLs   pq.StringArray    `gorm:"type:text[]" json:"imageUrls,omitempty"`
}

// BeforeCreate generates the ID when the caller did not assign one.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
