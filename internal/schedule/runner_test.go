package schedule

import (
	"testing"
	"time"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
)

func TestRunDailyScenario(t *testing.T) {
	// wallet 10000, fixed monthly income 3000 on day 5, run on the 5th
	db := openTestDB(t)
	user, w := seedUserWallet(t, db, 10000)
	src := seedFixedSource(t, db, user, w, models.SourceIncome, 3000, 5, models.PeriodMonthly)
	r := NewRunner(db, testLogger())

	ref := date(2026, time.March, 5)
	report, err := r.RunDaily(ref)
	if err != nil {
		t.Fatalf("RunDaily() error = %v", err)
	}
	if report.ProcessedCount() != 1 || report.Income.Processed != 1 {
		t.Errorf("report = %+v, want one processed income", report)
	}
	if got := walletBalance(t, db, w.ID); !got.Equal(decimal.NewFromInt(13000)) {
		t.Errorf("balance = %s, want 13000", got)
	}

	var txn models.Transaction
	if err := db.First(&txn).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.Title != "Added Income for test source on 05 Mar 2026" {
		t.Errorf("title = %q", txn.Title)
	}

	var reloaded models.FinancialSource
	if err := db.First(&reloaded, src.ID).Error; err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if reloaded.NextDueDate == nil || !sameDay(*reloaded.NextDueDate, date(2026, time.April, 5)) {
		t.Errorf("NextDueDate = %v, want 2026-04-05", reloaded.NextDueDate)
	}
}

func TestRunDailySecondRunIsNoop(t *testing.T) {
	db := openTestDB(t)
	user, w := seedUserWallet(t, db, 10000)
	seedFixedSource(t, db, user, w, models.SourceIncome, 3000, 5, models.PeriodMonthly)
	r := NewRunner(db, testLogger())

	ref := date(2026, time.March, 5)
	if _, err := r.RunDaily(ref); err != nil {
		t.Fatalf("first RunDaily() error = %v", err)
	}
	second, err := r.RunDaily(ref)
	if err != nil {
		t.Fatalf("second RunDaily() error = %v", err)
	}
	if second.ProcessedCount() != 0 {
		t.Errorf("second run processed = %d, want 0", second.ProcessedCount())
	}
	if second.SkippedCount() != 1 {
		t.Errorf("second run skipped = %d, want 1", second.SkippedCount())
	}
	if got := walletBalance(t, db, w.ID); !got.Equal(decimal.NewFromInt(13000)) {
		t.Errorf("balance = %s, want 13000 after idempotent rerun", got)
	}
}

func TestRunDailyInsufficientFundsCounted(t *testing.T) {
	// wallet 1000, fixed monthly expense 5000 on day 1, run on the 1st
	db := openTestDB(t)
	user, w := seedUserWallet(t, db, 1000)
	src := seedFixedSource(t, db, user, w, models.SourceExpense, 5000, 1, models.PeriodMonthly)
	r := NewRunner(db, testLogger())

	report, err := r.RunDaily(date(2026, time.March, 1))
	if err != nil {
		t.Fatalf("RunDaily() error = %v", err)
	}
	if report.Expense.InsufficientFunds != 1 {
		t.Errorf("insufficient funds count = %d, want 1", report.Expense.InsufficientFunds)
	}
	if report.ProcessedCount() != 0 {
		t.Errorf("processed = %d, want 0", report.ProcessedCount())
	}
	if got := walletBalance(t, db, w.ID); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("balance = %s, want unchanged 1000", got)
	}

	var reloaded models.FinancialSource
	if err := db.First(&reloaded, src.ID).Error; err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if reloaded.NextDueDate != nil {
		t.Errorf("NextDueDate = %v, want nil so the source is retried", reloaded.NextDueDate)
	}
}

func TestRunDailyFailureIsolation(t *testing.T) {
	// a source whose wallet is gone fails, the healthy one still posts
	db := openTestDB(t)
	user, w := seedUserWallet(t, db, 100)
	broken := seedFixedSource(t, db, user, w, models.SourceIncome, 10, 5, models.PeriodMonthly)
	if err := db.Model(broken).Update("wallet_id", 9999).Error; err != nil {
		t.Fatalf("break source: %v", err)
	}
	seedFixedSource(t, db, user, w, models.SourceIncome, 50, 5, models.PeriodMonthly)
	r := NewRunner(db, testLogger())

	report, err := r.RunDaily(date(2026, time.March, 5))
	if err != nil {
		t.Fatalf("RunDaily() error = %v", err)
	}
	if report.Income.Failed != 1 {
		t.Errorf("failed = %d, want 1", report.Income.Failed)
	}
	if report.Income.Processed != 1 {
		t.Errorf("processed = %d, want 1 despite the failing sibling", report.Income.Processed)
	}
	if got := walletBalance(t, db, w.ID); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("balance = %s, want 150", got)
	}
}

func TestRunDailyExcludesSoftDeleted(t *testing.T) {
	db := openTestDB(t)
	user, w := seedUserWallet(t, db, 100)
	src := seedFixedSource(t, db, user, w, models.SourceIncome, 10, 5, models.PeriodMonthly)
	now := time.Now()
	if err := db.Model(src).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		t.Fatalf("soft delete source: %v", err)
	}
	r := NewRunner(db, testLogger())

	report, err := r.RunDaily(date(2026, time.March, 5))
	if err != nil {
		t.Fatalf("RunDaily() error = %v", err)
	}
	total := report.ProcessedCount() + report.SkippedCount() +
		report.FailedCount() + report.InsufficientFundsCount()
	if total != 0 {
		t.Errorf("soft-deleted source was selected: report = %+v", report)
	}
	if got := walletBalance(t, db, w.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance = %s, want unchanged 100", got)
	}
}

func TestRunDailyProcessesBothKinds(t *testing.T) {
	db := openTestDB(t)
	user, w := seedUserWallet(t, db, 1000)
	seedFixedSource(t, db, user, w, models.SourceIncome, 300, 5, models.PeriodMonthly)
	seedFixedSource(t, db, user, w, models.SourceExpense, 200, 5, models.PeriodMonthly)
	r := NewRunner(db, testLogger())

	report, err := r.RunDaily(date(2026, time.March, 5))
	if err != nil {
		t.Fatalf("RunDaily() error = %v", err)
	}
	if report.Income.Processed != 1 || report.Expense.Processed != 1 {
		t.Errorf("report = %+v, want one processed per kind", report)
	}
	if got := walletBalance(t, db, w.ID); !got.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("balance = %s, want 1100", got)
	}
}
