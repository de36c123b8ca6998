package repository

import (
	"strings"

	"savingsTracker/models"
)

// LedgerFilter narrows a ledger listing. Zero values disable a condition.
// From and To are inclusive bounds in models.TimestampLayout; a date-only
// bound such as "2024-05-01" also works because the layout sorts lexically.
type LedgerFilter struct {
	User string
	From string
	To   string
}

// IsZero reports whether the filter matches everything.
func (f LedgerFilter) IsZero() bool {
	return f.User == "" && strings.TrimSpace(f.From) == "" && strings.TrimSpace(f.To) == ""
}

// Match reports whether d satisfies every condition of f.
func (f LedgerFilter) Match(d models.Deposit) bool {
	if f.User != "" && d.User != f.User {
		return false
	}
	if from := strings.TrimSpace(f.From); from != "" && d.Timestamp < from {
		return false
	}
	if to := strings.TrimSpace(f.To); to != "" {
		// A date-only upper bound covers the whole day.
		if len(to) == len("2006-01-02") {
			to += " 23:59"
		}
		if d.Timestamp > to {
			return false
		}
	}
	return true
}

// FilterDeposits returns the deposits matching f, keeping order and positions.
func FilterDeposits(deposits []models.Deposit, f LedgerFilter) []models.Deposit {
	out := make([]models.Deposit, 0, len(deposits))
	for _, d := range deposits {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// SumDeposits totals the amounts of deposits.
func SumDeposits(deposits []models.Deposit) int64 {
	var total int64
	for _, d := range deposits {
		total += d.Amount
	}
	return total
}

// ReverseDeposits returns a newest-first copy of deposits for history views.
func ReverseDeposits(deposits []models.Deposit) []models.Deposit {
	out := make([]models.Deposit, len(deposits))
	for i, d := range deposits {
		out[len(deposits)-1-i] = d
	}
	return out
}

// removeAt drops the element at position and renumbers the remaining positions.
func removeAt(deposits []models.Deposit, position int, expected *models.Deposit) ([]models.Deposit, error) {
	if position < 0 || position >= len(deposits) {
		return nil, ErrPositionOutOfRange
	}
	if expected != nil && !deposits[position].SameRecord(*expected) {
		return nil, ErrStaleDeposit
	}
	out := make([]models.Deposit, 0, len(deposits)-1)
	out = append(out, deposits[:position]...)
	out = append(out, deposits[position+1:]...)
	for i := range out {
		out[i].Position = i
	}
	return out, nil
}
