package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleResident is the only role this service ever assigns.
const RoleResident = "resident"

// User is the resident profile stored in the users collection.
// It is created at sign-up together with its Credential and afterwards only the
// two lifecycle flags are changed, by the administrative tool.
type User struct {
	UID         string `gorm:"primaryKey;type:uuid" json:"uid"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	FullName    string `gorm:"not null" json:"fullName"`
	Phone       string `json:"phone"`
	HouseNumber string `gorm:"not null" json:"houseNumber"`
	CNIC        string `gorm:"column:cnic" json:"cnic"`
	// IsActive is cleared when an administrator deactivates the account.
	IsActive bool `gorm:"not null;default:false" json:"isActive"`
	// IsApproved gates every protected route until an administrator sets it.
	IsApproved bool      `gorm:"not null;default:false" json:"isApproved"`
	Role       string    `gorm:"not null;default:resident" json:"role"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false;not null;default:now()" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false;not null;default:now()" json:"updatedAt"`
}

// BeforeCreate generates the UID when the caller did not assign one.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.UID == "" {
		u.UID = uuid.New().String()
	}
	return
}

// Credential is the authentication record behind a User. It shares the UID.
type Credential struct {
	UID          string    `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false;not null;default:now()"`
}

// BeforeCreate generates the UID when the caller did not assign one.
func (c *Credential) BeforeCreate(tx *gorm.DB) (err error) {
	if c.UID == "" {
		c.UID = uuid.New().String()
	}
	return
}
