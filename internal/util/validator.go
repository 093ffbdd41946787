package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.New(1, 7) // ten million per single entry

// ValidateAmount checks that an amount is positive and below the hard cap.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ParseAmount parses a decimal amount string and validates it.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateDate checks a YYYY-MM-DD string and returns the parsed date.
func ValidateDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateCycleDay checks a cycle day-of-month. Days 29-31 are accepted;
// months with fewer days roll the occurrence over per calendar rules, so
// callers are advised to stick to 1-28.
func ValidateCycleDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("cycle day must be between 1 and 31, got %d", day)
	}
	return nil
}
