package interfaces

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/shopspring/decimal"
)

// recurrenceDTO is the wire form of the repeat fields. Dates are YYYY-MM-DD.
type recurrenceDTO struct {
	Date                  string  `json:"date"`
	RepeatsWeekly         *int    `json:"repeats_weekly"`
	RepeatsOnDaysOfMonth  []int   `json:"repeats_on_days_of_month"`
	RepeatsOnMonthsOfYear []int   `json:"repeats_on_months_of_year"`
	RepeatsUntilDate      *string `json:"repeats_until_date"`
}

func newRecurrenceDTO(r recurrence.Recurrence) recurrenceDTO {
	dto := recurrenceDTO{
		RepeatsWeekly:         r.RepeatsWeekly,
		RepeatsOnDaysOfMonth:  r.RepeatsOnDaysOfMonth,
		RepeatsOnMonthsOfYear: r.RepeatsOnMonthsOfYear,
	}
	if !r.Date.IsZero() {
		dto.Date = r.Date.Format(recurrence.DateLayout)
	}
	if dto.RepeatsOnDaysOfMonth == nil {
		dto.RepeatsOnDaysOfMonth = []int{}
	}
	if dto.RepeatsOnMonthsOfYear == nil {
		dto.RepeatsOnMonthsOfYear = []int{}
	}
	if r.RepeatsUntilDate != nil {
		until := r.RepeatsUntilDate.Format(recurrence.DateLayout)
		dto.RepeatsUntilDate = &until
	}
	return dto
}

// toRecurrence leaves an empty date zero so that the domain reports it as
// missing.
func (d recurrenceDTO) toRecurrence() (recurrence.Recurrence, error) {
	r := recurrence.Recurrence{
		RepeatsWeekly:         d.RepeatsWeekly,
		RepeatsOnDaysOfMonth:  d.RepeatsOnDaysOfMonth,
		RepeatsOnMonthsOfYear: d.RepeatsOnMonthsOfYear,
	}
	if d.Date != "" {
		date, err := recurrence.ParseDate(d.Date)
		if err != nil {
			return r, financeErrors.NewValidationError("Invalid date format, expected YYYY-MM-DD")
		}
		r.Date = date
	}
	if d.RepeatsUntilDate != nil && *d.RepeatsUntilDate != "" {
		until, err := recurrence.ParseDate(*d.RepeatsUntilDate)
		if err != nil {
			return r, financeErrors.NewValidationError("Invalid end date format, expected YYYY-MM-DD")
		}
		r.RepeatsUntilDate = &until
	}
	return r, nil
}

// parseOptionalID maps an empty string to uuid.Nil.
func parseOptionalID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, financeErrors.NewValidationError(fmt.Sprintf("Invalid %s", field))
	}
	return id, nil
}

type paymentRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IsIncome    bool            `json:"is_income"`
	IsPaycheck  bool            `json:"is_paycheck"`
	recurrenceDTO
}

func (req paymentRequest) toPayment() (*domain.Payment, error) {
	accountID, err := parseOptionalID("account_id", req.AccountID)
	if err != nil {
		return nil, err
	}
	schedule, err := req.toRecurrence()
	if err != nil {
		return nil, err
	}
	return &domain.Payment{
		AccountID:   accountID,
		Amount:      req.Amount,
		Description: req.Description,
		IsPaycheck:  req.IsPaycheck,
		Recurrence:  schedule,
	}, nil
}

type paymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IsIncome    bool            `json:"is_income"`
	IsPaycheck  bool            `json:"is_paycheck"`
	recurrenceDTO
	Schedule  string    `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		AccountID:     p.AccountID,
		Amount:        p.Amount,
		Description:   p.Description,
		IsIncome:      p.IsIncome(),
		IsPaycheck:    p.IsPaycheck,
		recurrenceDTO: newRecurrenceDTO(p.Recurrence),
		Schedule:      recurrence.Describe(p.Recurrence).Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type transferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	recurrenceDTO
}

func (req transferRequest) toTransfer() (*domain.Transfer, error) {
	from, err := parseOptionalID("from_account_id", req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalID("to_account_id", req.ToAccountID)
	if err != nil {
		return nil, err
	}
	schedule, err := req.toRecurrence()
	if err != nil {
		return nil, err
	}
	return &domain.Transfer{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        req.Amount,
		Recurrence:    schedule,
	}, nil
}

type accountRequest struct {
	Name             string           `json:"name"`
	AccountType      string           `json:"account_type"`
	CreditCardType   *string          `json:"credit_card_type"`
	Balance          decimal.Decimal  `json:"balance"`
	TotalDeposits    *decimal.Decimal `json:"total_deposits"`
	TotalFixedIncome *decimal.Decimal `json:"total_fixed_income"`
}

func (req accountRequest) toAccount() *domain.Account {
	account := &domain.Account{
		Name:             req.Name,
		AccountType:      domain.AccountType(req.AccountType),
		Balance:          req.Balance,
		TotalDeposits:    req.TotalDeposits,
		TotalFixedIncome: req.TotalFixedIncome,
	}
	if req.CreditCardType != nil {
		card := domain.CreditCardType(*req.CreditCardType)
		account.CreditCardType = &card
	}
	return account
}

type accountResponse struct {
	ID               uuid.UUID                 `json:"id"`
	Name             string                    `json:"name"`
	AccountType      domain.AccountType        `json:"account_type"`
	AccountTypeLabel string                    `json:"account_type_label"`
	CreditCardType   *domain.CreditCardType    `json:"credit_card_type,omitempty"`
	Balance          decimal.Decimal           `json:"balance"`
	TotalDeposits    *decimal.Decimal          `json:"total_deposits,omitempty"`
	TotalFixedIncome *decimal.Decimal          `json:"total_fixed_income,omitempty"`
	Investment       *domain.InvestmentSummary `json:"investment,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:               a.ID,
		Name:             a.Name,
		AccountType:      a.AccountType,
		AccountTypeLabel: domain.DisplayAccountType(a.AccountType),
		CreditCardType:   a.CreditCardType,
		Balance:          a.Balance,
		TotalDeposits:    a.TotalDeposits,
		TotalFixedIncome: a.TotalFixedIncome,
		Investment:       a.InvestmentSummary(),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

type cycleItemResponse struct {
	Date         string          `json:"date"`
	PaymentID    uuid.UUID       `json:"payment_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

func newCycleItemResponses(items []domain.CycleItem) []cycleItemResponse {
	out := make([]cycleItemResponse, len(items))
	for i, item := range items {
		out[i] = cycleItemResponse{
			Date:         item.Date.Format(recurrence.DateLayout),
			PaymentID:    item.PaymentID,
			AccountID:    item.AccountID,
			Description:  item.Description,
			Amount:       item.Amount,
			BalanceAfter: item.BalanceAfter,
		}
	}
	return out
}
