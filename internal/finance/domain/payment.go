package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 200

// Payment is money leaving (negative amount) or entering (positive amount) an
// account on Date, optionally repeating.
type Payment struct {
	ID          uuid.UUID
	UserID      string
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	IsPaycheck  bool
	recurrence.Recurrence
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SignedAmount turns the magnitude typed into the form into a stored amount,
// rounded to cents. A non-zero magnitude that rounds to zero is rejected.
func SignedAmount(magnitude decimal.Decimal, isIncome bool) (decimal.Decimal, error) {
	abs := magnitude.Abs().Round(2)
	if abs.IsZero() && !magnitude.IsZero() {
		return decimal.Zero, financeErrors.ErrAmountBelowCent
	}
	if isIncome {
		return abs, nil
	}
	return abs.Neg(), nil
}

func (p *Payment) IsIncome() bool {
	return p.Amount.IsPositive()
}

// Normalize rounds the amount and repairs the schedule selections.
func (p *Payment) Normalize() {
	p.Amount = p.Amount.Round(2)
	p.Recurrence = recurrence.Normalize(p.Recurrence)
	if !p.IsIncome() {
		p.IsPaycheck = false
	}
}

// Validate rejects payments that cannot be stored. Softer schedule problems
// are left to recurrence.Describe.
func (p *Payment) Validate() error {
	problems := &financeErrors.ValidationErrors{}
	if p.AccountID == uuid.Nil {
		problems.Add(financeErrors.ErrAccountRequired)
	}
	if p.Date.IsZero() {
		problems.Add(financeErrors.NewValidationError("Date is required"))
	}
	if len(p.Description) > maxDescriptionLength {
		problems.Add(financeErrors.NewValidationError(fmt.Sprintf("Description must be of length less than %d", maxDescriptionLength)))
	}
	for _, msg := range ScheduleProblems(p.Recurrence) {
		problems.Add(financeErrors.NewValidationError(msg))
	}
	return problems.OrNil()
}

// ScheduleProblems lists the schedule states no form edit can produce.
func ScheduleProblems(r recurrence.Recurrence) []string {
	var problems []string
	weekly := r.RepeatsWeekly != nil
	monthly := len(r.RepeatsOnDaysOfMonth) > 0
	if weekly && monthly {
		problems = append(problems, recurrence.MsgBothModes)
	}
	if weekly && (*r.RepeatsWeekly < 1 || *r.RepeatsWeekly > recurrence.MaxWeeklyInterval) {
		problems = append(problems, fmt.Sprintf("Weekly repeats must be every 1 to %d weeks.", recurrence.MaxWeeklyInterval))
	}
	for _, d := range r.RepeatsOnDaysOfMonth {
		if !recurrence.ValidDay(d) {
			problems = append(problems, fmt.Sprintf("Day %d is not a valid day of the month.", d))
		}
	}
	for _, m := range r.RepeatsOnMonthsOfYear {
		if !recurrence.ValidMonth(m) {
			problems = append(problems, fmt.Sprintf("Month %d is not a valid month.", m))
		}
	}
	if len(r.RepeatsOnMonthsOfYear) > 0 && !monthly {
		problems = append(problems, recurrence.MsgMonthsWithoutDays)
	}
	return problems
}
