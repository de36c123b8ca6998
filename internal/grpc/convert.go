package grpcserver

import (
	savingsv1 "savingsTracker/api/savings/v1"
	"savingsTracker/models"
)

func toProtoDeposit(d models.Deposit) *savingsv1.Deposit {
	return &savingsv1.Deposit{
		Position:  int32(d.Position),
		Timestamp: d.Timestamp,
		User:      d.User,
		Amount:    d.Amount,
		Note:      d.Note,
	}
}

func toProtoDeposits(ds []models.Deposit) []*savingsv1.Deposit {
	out := make([]*savingsv1.Deposit, 0, len(ds))
	for _, d := range ds {
		out = append(out, toProtoDeposit(d))
	}
	return out
}

// fromProtoDeposit returns nil for a nil message so optional fields stay optional.
func fromProtoDeposit(d *savingsv1.Deposit) *models.Deposit {
	if d == nil {
		return nil
	}
	return &models.Deposit{
		Position:  int(d.Position),
		Timestamp: d.Timestamp,
		User:      d.User,
		Amount:    d.Amount,
		Note:      d.Note,
	}
}

// toProtoUser copies the credential; the password is included only when withPassword is set.
func toProtoUser(c *models.Credential, withPassword bool) *savingsv1.User {
	u := &savingsv1.User{Username: c.Username, Role: string(c.Role)}
	if withPassword {
		u.Password = c.Password
	}
	return u
}
