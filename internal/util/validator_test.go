package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmountPositive(t *testing.T) {
	testCases := []string{"0.01", "1", "100.5", "9999999.99"}

	for _, s := range testCases {
		amount, _ := decimal.NewFromString(s)
		if err := ValidateAmount(amount); err != nil {
			t.Errorf("ValidateAmount(%s) error = %v, want nil", s, err)
		}
	}
}

func TestValidateAmountNonPositive(t *testing.T) {
	testCases := []string{"0", "-0.01", "-100"}

	for _, s := range testCases {
		amount, _ := decimal.NewFromString(s)
		if err := ValidateAmount(amount); err == nil {
			t.Errorf("ValidateAmount(%s) error = nil, want error", s)
		}
	}
}

func TestValidateAmountTooLarge(t *testing.T) {
	if err := ValidateAmount(decimal.NewFromInt(100000000)); err == nil {
		t.Error("ValidateAmount(100000000) error = nil, want error")
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("123.45")
	if err != nil {
		t.Fatalf("ParseAmount(123.45) error = %v", err)
	}
	if !d.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("ParseAmount(123.45) = %s", d)
	}

	for _, s := range []string{"", "abc", "-5", "0"} {
		if _, err := ParseAmount(s); err == nil {
			t.Errorf("ParseAmount(%q) error = nil, want error", s)
		}
	}
}

func TestValidateDateValid(t *testing.T) {
	testCases := []string{"2024-01-01", "2024-12-31", "2025-06-15"}

	for _, date := range testCases {
		if _, err := ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDateInvalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		if _, err := ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateCycleDay(t *testing.T) {
	for _, day := range []int{1, 15, 28, 31} {
		if err := ValidateCycleDay(day); err != nil {
			t.Errorf("ValidateCycleDay(%d) error = %v, want nil", day, err)
		}
	}
	for _, day := range []int{0, -1, 32} {
		if err := ValidateCycleDay(day); err == nil {
			t.Errorf("ValidateCycleDay(%d) error = nil, want error", day)
		}
	}
}
