package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a single running balance owned by one user.
// Balance is mutated exclusively through the ledger package and must
// never go negative.
type Wallet struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Name      string          `gorm:"size:64;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
