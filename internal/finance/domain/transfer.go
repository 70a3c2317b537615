package domain

import (
	"fmt"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/shopspring/decimal"
)

// Transfer moves money between two accounts of the same user. It is stored
// as a pair of payments.
type Transfer struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	recurrence.Recurrence
}

// Validate checks the transfer in the order the form reports problems.
func (t *Transfer) Validate() error {
	switch {
	case t.FromAccountID == uuid.Nil:
		return financeErrors.ErrTransferFromRequired
	case t.ToAccountID == uuid.Nil:
		return financeErrors.ErrTransferToRequired
	case t.FromAccountID == t.ToAccountID:
		return financeErrors.ErrTransferSameAccount
	case !t.Amount.Round(2).IsPositive():
		return financeErrors.ErrTransferAmount
	}
	return nil
}

// Payments splits the transfer into the withdrawal from one account and the
// deposit into the other.
func (t *Transfer) Payments(userID string, from, to *Account) (*Payment, *Payment) {
	amount := t.Amount.Round(2)
	withdrawal := &Payment{
		UserID:      userID,
		AccountID:   from.ID,
		Amount:      amount.Neg(),
		Description: fmt.Sprintf("Transfer to %s", to.Name),
		Recurrence:  t.Recurrence,
	}
	deposit := &Payment{
		UserID:      userID,
		AccountID:   to.ID,
		Amount:      amount,
		Description: fmt.Sprintf("Transfer from %s", from.Name),
		Recurrence:  t.Recurrence,
	}
	return withdrawal, deposit
}
