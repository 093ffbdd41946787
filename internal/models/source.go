package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind tags a FinancialSource as money coming in or going out.
type SourceKind string

const (
	SourceIncome  SourceKind = "income"
	SourceExpense SourceKind = "expense"
)

// CyclePeriod is the recurrence period of a fixed source.
type CyclePeriod string

const (
	PeriodMonthly   CyclePeriod = "monthly"
	PeriodQuarterly CyclePeriod = "quarterly"
	PeriodYearly    CyclePeriod = "yearly"
)

// FinancialSource is a declared income or expense. A fixed source recurs
// on its cycle and is picked up by the daily batch; a spontaneous source
// realizes exactly once, at creation time.
//
// Exactly one of {CycleDayOfMonth+CyclePeriod, EntryDate} is populated,
// selected by IsFixed.
type FinancialSource struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	WalletID    uint            `gorm:"index;not null"`
	Kind        SourceKind      `gorm:"size:16;index;not null"`
	Name        string          `gorm:"size:64;not null"`
	Description string          `gorm:"size:255"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	IsFixed     bool            `gorm:"index;not null"`

	// Fixed sources only.
	CycleDayOfMonth int         `gorm:"default:0"`
	CyclePeriod     CyclePeriod `gorm:"size:16"`
	NextDueDate     *time.Time  `gorm:"index"` // nil: not yet scheduled, due on first run
	LastProcessedOn *time.Time  // date of the last occurrence actually posted

	// Spontaneous sources only.
	EntryDate *time.Time

	IsDeleted bool `gorm:"index;not null;default:false"`
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	User   User   `gorm:"constraint:OnDelete:CASCADE"`
	Wallet Wallet `gorm:"constraint:OnDelete:CASCADE"`
}

// TransactionKind returns the ledger effect of this source.
func (s *FinancialSource) TransactionKind() TransactionKind {
	if s.Kind == SourceIncome {
		return TxCredit
	}
	return TxDebit
}
