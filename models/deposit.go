package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the on-disk format of Deposit.Timestamp (YYYY-MM-DD HH:MM).
const TimestampLayout = "2006-01-02 15:04"

// Deposit labels offered at the input boundary. Storage accepts any text.
const (
	NoteCash     = "Cash"
	NoteTransfer = "Transfer (TF)"
)

// Amount policy enforced where deposits enter the system, never by the stores.
const (
	MinAmount  int64 = 10000
	AmountStep int64 = 10000
)

// Deposit is one row of the ledger.
// Position is the zero-based file-order index assigned on load; it is not persisted.
type Deposit struct {
	Position  int    `json:"position"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note"`
}

// NewDeposit builds a deposit stamped with now.
func NewDeposit(user string, amount int64, note string, now time.Time) Deposit {
	return Deposit{
		Timestamp: now.Format(TimestampLayout),
		User:      user,
		Amount:    amount,
		Note:      note,
	}
}

// SameRecord compares the persisted columns of two deposits, ignoring Position.
func (d Deposit) SameRecord(o Deposit) bool {
	return d.Timestamp == o.Timestamp && d.User == o.User && d.Amount == o.Amount && d.Note == o.Note
}

// KnownNotes returns the fixed list of deposit labels.
func KnownNotes() []string {
	return []string{NoteCash, NoteTransfer}
}

// IsKnownNote reports whether note is one of KnownNotes.
func IsKnownNote(note string) bool {
	for _, n := range KnownNotes() {
		if n == note {
			return true
		}
	}
	return false
}

// ValidateAmount checks the deposit amount policy: at least MinAmount and a
// multiple of AmountStep.
func ValidateAmount(amount int64) error {
	if amount < MinAmount {
		return fmt.Errorf("amount must be at least %d", MinAmount)
	}
	if amount%AmountStep != 0 {
		return fmt.Errorf("amount must be a multiple of %d", AmountStep)
	}
	return nil
}
