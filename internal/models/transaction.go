package models

import (
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypePayment  = "payment"
	TransactionTypeRefund   = "refund"
	TransactionTypeTransfer = "transfer"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusRefunded  = "refunded"
)

// Transaction is an immutable audit record of a balance change. For
// type=payment the sender and receiver are the same wallet (self-credit);
// for type=transfer they must differ. Corrections are recorded as new
// compensating refund transactions, never by rewriting history.
type Transaction struct {
	gorm.Model
	PaymentID   uint     `gorm:"index"`
	SenderID    uint     `gorm:"not null;index"`
	Sender      *User    `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID  uint     `gorm:"not null;index"`
	Receiver    *User    `gorm:"foreignKey:ReceiverID" json:"-"`
	Amount      int64    `gorm:"not null"`
	Currency    string   `gorm:"not null"`
	Type        string   `gorm:"not null"`
	Status      string   `gorm:"not null;default:'pending'"`
	Description string   `gorm:"default:''"`
	Metadata    Metadata `gorm:"type:jsonb"`
}
