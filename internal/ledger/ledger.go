// Package ledger owns the pairing of "a transaction row exists" and
// "the wallet balance reflects it". Every balance change in the system
// goes through Mutator.Apply; nothing else writes Wallet.Balance.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientBalance is the expected business condition for a
	// debit larger than the current wallet balance. No mutation happens.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrWalletNotFound means the wallet id did not resolve.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidAmount rejects zero or negative magnitudes.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Entry describes one balance change to apply. Amount is always the
// positive magnitude; Kind carries the sign.
type Entry struct {
	WalletID    uint
	UserID      uint
	Amount      decimal.Decimal
	Kind        models.TransactionKind
	Title       string
	Description string
	File        string
	OccurredAt  time.Time
}

// Mutator applies ledger entries against wallet balances.
type Mutator struct {
	db *gorm.DB
}

func NewMutator(db *gorm.DB) *Mutator {
	return &Mutator{db: db}
}

// Apply creates exactly one Transaction and moves the wallet balance by
// the entry amount, inside a single database transaction. A debit that
// would drive the balance negative fails with ErrInsufficientBalance and
// leaves both the wallet and the transaction table untouched.
//
// The balance is re-read inside the transaction; callers must not rely
// on a balance observed earlier.
func (m *Mutator) Apply(e Entry) (*models.Transaction, error) {
	if e.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var created *models.Transaction
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.First(&wallet, e.WalletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return fmt.Errorf("load wallet %d: %w", e.WalletID, err)
		}

		var newBalance decimal.Decimal
		switch e.Kind {
		case models.TxDebit:
			if wallet.Balance.LessThan(e.Amount) {
				return ErrInsufficientBalance
			}
			newBalance = wallet.Balance.Sub(e.Amount)
		default:
			newBalance = wallet.Balance.Add(e.Amount)
		}

		txn := &models.Transaction{
			WalletID:    e.WalletID,
			UserID:      e.UserID,
			Title:       e.Title,
			Description: e.Description,
			File:        e.File,
			Amount:      e.Amount,
			Kind:        e.Kind,
			OccurredAt:  e.OccurredAt,
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		if err := tx.Model(&models.Wallet{}).
			Where("id = ?", wallet.ID).
			Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("update wallet balance: %w", err)
		}

		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
