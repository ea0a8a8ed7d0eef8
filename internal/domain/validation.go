package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxTransferAmount = "1000000000000" // 1 trillion
)

// ValidateTransferInput checks a submission before any network or store
// effect. It returns the trimmed account ids so callers send exactly what
// was validated.
func ValidateTransferInput(fromID, toID string, amount decimal.Decimal) (from, to string, err error) {
	from = strings.TrimSpace(fromID)
	to = strings.TrimSpace(toID)

	if from == "" {
		return "", "", fmt.Errorf("%w: fromId is required", ErrValidation)
	}

	if to == "" {
		return "", "", fmt.Errorf("%w: toId is required", ErrValidation)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return "", "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if max, _ := decimal.NewFromString(MaxTransferAmount); amount.GreaterThan(max) {
		return "", "", fmt.Errorf("%w: amount exceeds %s", ErrValidation, MaxTransferAmount)
	}

	return from, to, nil
}
