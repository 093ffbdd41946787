package schedule

import (
	"fmt"
	"time"

	"spendwise/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// KindReport holds per-kind counters for one daily run.
type KindReport struct {
	Processed         int `json:"processed"`
	Skipped           int `json:"skipped"`
	Failed            int `json:"failed"`
	InsufficientFunds int `json:"insufficient_funds"`
}

func (r *KindReport) fold(out Outcome) {
	switch out.Status {
	case StatusProcessed:
		r.Processed++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		if out.Reason == SkipInsufficientFunds {
			r.InsufficientFunds++
		} else {
			r.Skipped++
		}
	}
}

// RunReport summarizes one daily batch run.
type RunReport struct {
	Date    time.Time  `json:"date"`
	Income  KindReport `json:"income"`
	Expense KindReport `json:"expense"`
}

func (r RunReport) ProcessedCount() int {
	return r.Income.Processed + r.Expense.Processed
}

func (r RunReport) SkippedCount() int {
	return r.Income.Skipped + r.Expense.Skipped
}

func (r RunReport) FailedCount() int {
	return r.Income.Failed + r.Expense.Failed
}

func (r RunReport) InsufficientFundsCount() int {
	return r.Income.InsufficientFunds + r.Expense.InsufficientFunds
}

// Runner is the daily batch driver. It is triggered externally, once per
// calendar day; nothing in this package self-schedules.
type Runner struct {
	db        *gorm.DB
	processor *Processor
	log       zerolog.Logger
}

func NewRunner(db *gorm.DB, log zerolog.Logger) *Runner {
	return &Runner{
		db:        db,
		processor: NewProcessor(db, log),
		log:       log,
	}
}

// RunDaily walks every active fixed source once, income sources first,
// then expenses, and folds each outcome into the report. One source
// failing never prevents the rest from being attempted; a returned error
// means the selection query itself failed.
func (r *Runner) RunDaily(refDate time.Time) (RunReport, error) {
	refDate = Midnight(refDate)
	report := RunReport{Date: refDate}

	for _, kind := range []models.SourceKind{models.SourceIncome, models.SourceExpense} {
		sub, err := r.runKind(kind, refDate)
		if err != nil {
			return report, err
		}
		if kind == models.SourceIncome {
			report.Income = sub
		} else {
			report.Expense = sub
		}
	}

	r.log.Info().
		Time("date", refDate).
		Int("processed", report.ProcessedCount()).
		Int("skipped", report.SkippedCount()).
		Int("failed", report.FailedCount()).
		Int("insufficient_funds", report.InsufficientFundsCount()).
		Msg("daily run finished")
	return report, nil
}

func (r *Runner) runKind(kind models.SourceKind, refDate time.Time) (KindReport, error) {
	var report KindReport

	var sources []models.FinancialSource
	if err := r.db.
		Where("kind = ? AND is_fixed = ? AND is_deleted = ?", kind, true, false).
		Order("id ASC").
		Find(&sources).Error; err != nil {
		return report, fmt.Errorf("select %s sources: %w", kind, err)
	}

	for i := range sources {
		report.fold(r.processor.Process(&sources[i], refDate))
	}
	return report, nil
}
