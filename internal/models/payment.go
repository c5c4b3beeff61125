package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment methods
const (
	PaymentMethodProcessor = "processor"
	PaymentMethodTransfer  = "transfer"
)

// Payment is a funding event against a single wallet. For transfers an audit
// Payment row is created alongside the transfer transaction.
type Payment struct {
	gorm.Model
	UserID         uint   `gorm:"not null;index"`
	User           *User  `gorm:"foreignKey:UserID" json:"-"`
	Amount         int64  `gorm:"not null"`
	Currency       string `gorm:"not null"`
	Method         string `gorm:"not null;default:'processor'"`
	Reference      string `gorm:"uniqueIndex;not null"`
	ClientSecret   string `json:"-"`
	Status         string `gorm:"not null;default:'pending'"`
	RefundedAmount int64  `gorm:"not null;default:0"`
	SettledAt      *time.Time
}
