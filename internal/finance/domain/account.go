package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking     AccountType = "Checking_Account"
	AccountSavings      AccountType = "Savings_Account"
	AccountCash         AccountType = "Cash"
	AccountCreditCard   AccountType = "Credit_Card"
	AccountLineOfCredit AccountType = "Line_Of_Credit"
	AccountCarLoan      AccountType = "Car_Loan"
	AccountMortgage     AccountType = "Mortgage"
	AccountPersonalLoan AccountType = "Personal_Loan"
	AccountStudentLoan  AccountType = "Student_Loan"
	AccountInvestment   AccountType = "Investment"
	AccountRetirement   AccountType = "Retirement"
)

type CreditCardType string

const (
	CardVisa            CreditCardType = "Visa"
	CardMasterCard      CreditCardType = "MasterCard"
	CardAmericanExpress CreditCardType = "American_Express"
	CardDiscover        CreditCardType = "Discover"
)

var CreditCardTypes = []CreditCardType{CardVisa, CardMasterCard, CardAmericanExpress, CardDiscover}

type AccountGroup struct {
	Name  string        `json:"name"`
	Types []AccountType `json:"types"`
}

var (
	BankGroup       = AccountGroup{Name: "Bank Accounts", Types: []AccountType{AccountChecking, AccountSavings, AccountCash}}
	DebtGroup       = AccountGroup{Name: "Debt", Types: []AccountType{AccountCreditCard, AccountLineOfCredit, AccountCarLoan, AccountMortgage, AccountPersonalLoan, AccountStudentLoan}}
	InvestmentGroup = AccountGroup{Name: "Investments", Types: []AccountType{AccountInvestment, AccountRetirement}}

	AccountGroups = []AccountGroup{BankGroup, DebtGroup, InvestmentGroup}
)

func (g AccountGroup) Contains(t AccountType) bool {
	for _, candidate := range g.Types {
		if candidate == t {
			return true
		}
	}
	return false
}

func (t AccountType) Valid() bool {
	for _, g := range AccountGroups {
		if g.Contains(t) {
			return true
		}
	}
	return false
}

func (t AccountType) IsDebt() bool {
	return DebtGroup.Contains(t)
}

func (t AccountType) IsInvestment() bool {
	return InvestmentGroup.Contains(t)
}

func (c CreditCardType) Valid() bool {
	for _, candidate := range CreditCardTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// DisplayAccountType turns "Credit_Card" into "Credit Card".
func DisplayAccountType(t AccountType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

type Account struct {
	ID               uuid.UUID
	UserID           string
	Name             string
	AccountType      AccountType
	CreditCardType   *CreditCardType
	Balance          decimal.Decimal
	TotalDeposits    *decimal.Decimal
	TotalFixedIncome *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Normalize capitalizes the name, rounds money to cents and drops the fields
// the account's category does not carry.
func (a *Account) Normalize() {
	a.Name = capitalizeWords(strings.TrimSpace(a.Name))
	a.Balance = a.Balance.Round(2)

	fields := CategoryOf(a.AccountType).fieldSet()
	if !fields[FieldCreditCardType] {
		a.CreditCardType = nil
	}
	if !fields[FieldTotalDeposits] {
		a.TotalDeposits = nil
	} else if a.TotalDeposits != nil {
		rounded := a.TotalDeposits.Round(2)
		a.TotalDeposits = &rounded
	}
	if !fields[FieldTotalFixedIncome] {
		a.TotalFixedIncome = nil
	} else if a.TotalFixedIncome != nil {
		rounded := a.TotalFixedIncome.Round(2)
		a.TotalFixedIncome = &rounded
	}
}

func (a *Account) Validate() error {
	problems := &financeErrors.ValidationErrors{}
	if a.Name == "" {
		problems.Add(financeErrors.NewValidationError("Name is required"))
	}
	if len(a.Name) > 100 {
		problems.Add(financeErrors.NewValidationError("Name must be of length less than 100"))
	}
	if !a.AccountType.Valid() {
		problems.Add(financeErrors.ErrInvalidAccountType)
		return problems
	}
	if a.AccountType == AccountCreditCard && (a.CreditCardType == nil || !a.CreditCardType.Valid()) {
		problems.Add(financeErrors.ErrInvalidCreditCard)
	}
	if a.Balance.IsNegative() && !a.AccountType.IsDebt() {
		problems.Add(financeErrors.NewValidationError("Balance cannot be negative for this account type"))
	}
	if a.TotalDeposits != nil && a.TotalDeposits.IsNegative() {
		problems.Add(financeErrors.NewValidationError("Total deposits cannot be negative"))
	}
	if a.TotalFixedIncome != nil && a.TotalFixedIncome.IsNegative() {
		problems.Add(financeErrors.NewValidationError("Total fixed income cannot be negative"))
	}
	return problems.OrNil()
}

type InvestmentSummary struct {
	Equity          decimal.Decimal `json:"equity"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent decimal.Decimal `json:"gain_loss_percent"`
}

// InvestmentSummary is nil for accounts outside the investment group.
func (a *Account) InvestmentSummary() *InvestmentSummary {
	if !a.AccountType.IsInvestment() {
		return nil
	}
	deposits := decimal.Zero
	if a.TotalDeposits != nil {
		deposits = *a.TotalDeposits
	}
	fixedIncome := decimal.Zero
	if a.TotalFixedIncome != nil {
		fixedIncome = *a.TotalFixedIncome
	}

	gain := a.Balance.Sub(deposits)
	divisor := deposits
	if divisor.IsZero() {
		divisor = a.Balance
	}
	percent := decimal.Zero
	if !divisor.IsZero() {
		percent = gain.Div(divisor).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &InvestmentSummary{
		Equity:          a.Balance.Sub(fixedIncome),
		GainLoss:        gain,
		GainLossPercent: percent,
	}
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
