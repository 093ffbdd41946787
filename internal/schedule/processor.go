package schedule

import (
	"errors"
	"fmt"
	"time"

	"spendwise/internal/ledger"
	"spendwise/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Status classifies the outcome of processing one source.
type Status int

const (
	StatusProcessed Status = iota
	StatusSkipped
	StatusFailed
)

// Skip reasons.
const (
	SkipNotDue            = "not-due"
	SkipAlreadyProcessed  = "already-processed"
	SkipInsufficientFunds = "insufficient-funds"
)

// Outcome is the result of one Process call.
type Outcome struct {
	Status      Status
	Reason      string // set when Status == StatusSkipped
	Transaction *models.Transaction
	Err         error // set when Status == StatusFailed
}

// Processor runs a single financial source against the ledger.
type Processor struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewProcessor(db *gorm.DB, log zerolog.Logger) *Processor {
	return &Processor{db: db, log: log}
}

// Process handles one fixed source for the given reference date: gate on
// the cycle, post the ledger entry, then advance the schedule. Ledger
// posting and schedule advancement commit together, so a source is never
// left posted-but-not-advanced.
//
// An insufficient-funds debit is skipped without advancing NextDueDate,
// leaving the occurrence eligible for retry on the next run.
func (p *Processor) Process(src *models.FinancialSource, refDate time.Time) Outcome {
	if !src.IsFixed {
		return Outcome{Status: StatusSkipped, Reason: SkipNotDue}
	}
	if !IsDue(src, refDate) {
		return Outcome{Status: StatusSkipped, Reason: SkipNotDue}
	}
	if src.LastProcessedOn != nil && sameDay(*src.LastProcessedOn, refDate) {
		// the day-of-month check alone would re-fire a monthly source on a
		// second run within the same day
		return Outcome{Status: StatusSkipped, Reason: SkipAlreadyProcessed}
	}

	title := fmt.Sprintf("Added %s for %s on %s",
		kindLabel(src.Kind), src.Name, refDate.Format("02 Jan 2006"))

	var (
		created *models.Transaction
		next    time.Time
	)
	err := p.db.Transaction(func(tx *gorm.DB) error {
		txn, err := ledger.NewMutator(tx).Apply(ledger.Entry{
			WalletID:    src.WalletID,
			UserID:      src.UserID,
			Amount:      src.Amount,
			Kind:        src.TransactionKind(),
			Title:       title,
			Description: src.Description,
			OccurredAt:  refDate,
		})
		if err != nil {
			return err
		}

		next = NextOccurrence(src, refDate)
		processedOn := Midnight(refDate)
		if err := tx.Model(&models.FinancialSource{}).
			Where("id = ?", src.ID).
			Updates(map[string]interface{}{
				"next_due_date":     next,
				"last_processed_on": processedOn,
			}).Error; err != nil {
			return fmt.Errorf("advance source schedule: %w", err)
		}

		created = txn
		return nil
	})

	switch {
	case err == nil:
		processedOn := Midnight(refDate)
		src.NextDueDate = &next
		src.LastProcessedOn = &processedOn
		return Outcome{Status: StatusProcessed, Transaction: created}

	case errors.Is(err, ledger.ErrInsufficientBalance):
		return Outcome{Status: StatusSkipped, Reason: SkipInsufficientFunds}

	default:
		p.log.Error().
			Err(err).
			Uint("source_id", src.ID).
			Str("source_name", src.Name).
			Str("kind", string(src.Kind)).
			Msg("source processing failed")
		return Outcome{Status: StatusFailed, Err: err}
	}
}

// RealizeSpontaneous persists a spontaneous source and posts its single
// ledger entry as one unit. On any failure, including insufficient
// balance for an expense, the source record is not kept; the error is
// returned for the creation endpoint to surface.
func (p *Processor) RealizeSpontaneous(src *models.FinancialSource) (*models.Transaction, error) {
	if src.IsFixed {
		return nil, fmt.Errorf("source %q is fixed, not spontaneous", src.Name)
	}

	occurredAt := time.Now()
	if src.EntryDate != nil {
		occurredAt = *src.EntryDate
	} else {
		src.EntryDate = &occurredAt
	}

	title := fmt.Sprintf("%s: %s", kindLabel(src.Kind), src.Name)

	var created *models.Transaction
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(src).Error; err != nil {
			return fmt.Errorf("create source: %w", err)
		}
		txn, err := ledger.NewMutator(tx).Apply(ledger.Entry{
			WalletID:    src.WalletID,
			UserID:      src.UserID,
			Amount:      src.Amount,
			Kind:        src.TransactionKind(),
			Title:       title,
			Description: src.Description,
			OccurredAt:  occurredAt,
		})
		if err != nil {
			return err
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func kindLabel(k models.SourceKind) string {
	if k == models.SourceIncome {
		return "Income"
	}
	return "Expense"
}
