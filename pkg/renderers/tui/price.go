package tui

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidatePrice accepts an empty answer or a non-negative decimal. Empty is
// allowed here so the form's own required-price flags decide.
func ValidatePrice(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return errors.New("enter a number such as 12.50")
	}
	if d.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

// NormalizePrice rewrites a valid answer in plain decimal notation, so
// "1e2" becomes "100" and ".5" becomes "0.5". Other answers are only trimmed.
func NormalizePrice(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return trimmed
	}
	return d.String()
}
