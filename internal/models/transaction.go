package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a ledger entry.
type TransactionKind string

const (
	TxCredit TransactionKind = "credit"
	TxDebit  TransactionKind = "debit"
)

// Transaction is one immutable ledger entry. It is created together with
// the paired wallet balance change and never updated afterwards; soft
// delete hides it from summaries without reversing the balance.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	WalletID    uint            `gorm:"index;not null"`
	UserID      uint            `gorm:"index;not null"`
	Title       string          `gorm:"size:128;not null"`
	Description string          `gorm:"size:255"`
	File        string          `gorm:"size:255"` // stored upload reference, optional
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Kind        TransactionKind `gorm:"size:16;index;not null"`
	OccurredAt  time.Time       `gorm:"index;not null"`

	IsDeleted bool `gorm:"index;not null;default:false"`
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
