package models

import (
	"gorm.io/gorm"
)

// User statuses
const (
	UserStatusActive      = "active"
	UserStatusSuspended   = "suspended"
	UserStatusDeactivated = "deactivated"
)

// User is a wallet owner. Balance is held in minor units (cents) and is only
// ever mutated by the payment and transfer services inside a storage
// transaction holding the user row lock.
type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null" json:"-"`
	FirstName           string `gorm:"not null"`
	LastName            string `gorm:"not null"`
	Balance             int64  `gorm:"not null;default:0"`
	Currency            string `gorm:"default:'USD'"`
	Role                string `gorm:"default:'user'"`
	Status              string `gorm:"default:'active'"`
	IsVerified          bool   `gorm:"default:false"`
	TokenVersion        int    `gorm:"default:1"`
	ProcessorCustomerID string `json:"-"`
}

// PublicProfile is the externally visible shape of a user record. Credentials
// and processor references are never serialized.
type PublicProfile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// PublicProfile strips credentials and internal references.
func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Balance:   u.Balance,
		Currency:  u.Currency,
		Role:      u.Role,
		Status:    u.Status,
	}
}

// FullName returns the display name used in transfer descriptions.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
