package domain

import (
	"testing"

	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(fields []FormField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestFormFields(t *testing.T) {
	tests := []struct {
		accountType AccountType
		category    AccountCategory
		fields      []string
	}{
		{AccountChecking, CategoryBank, []string{"name", "account_type", "balance"}},
		{AccountCreditCard, CategoryCreditCard, []string{"name", "account_type", "credit_card_type", "balance"}},
		{AccountMortgage, CategoryLoan, []string{"name", "account_type", "balance"}},
		{AccountInvestment, CategoryInvestment, []string{"name", "account_type", "balance", "total_deposits", "total_fixed_income"}},
		{AccountRetirement, CategoryInvestment, []string{"name", "account_type", "balance", "total_deposits", "total_fixed_income"}},
		{AccountType("Piggy_Bank"), CategoryBank, []string{"name", "account_type", "balance"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.category, CategoryOf(tt.accountType))
			assert.Equal(t, tt.fields, fieldNames(FormFields(tt.accountType)))
		})
	}
}

func TestFormFields_BalanceOptions(t *testing.T) {
	balance := func(t AccountType) FormField {
		for _, f := range FormFields(t) {
			if f.Name == FieldBalance {
				return f
			}
		}
		return FormField{}
	}

	assert.True(t, balance(AccountCreditCard).AllowNegative)
	assert.True(t, balance(AccountCarLoan).AllowNegative)
	assert.False(t, balance(AccountSavings).AllowNegative)
	assert.Equal(t, "Current Balance", balance(AccountInvestment).Label)
}

func TestDisplayAccountType(t *testing.T) {
	assert.Equal(t, "Credit Card", DisplayAccountType(AccountCreditCard))
	assert.Equal(t, "Cash", DisplayAccountType(AccountCash))
}

func TestAccount_Normalize(t *testing.T) {
	visa := CardVisa
	account := &Account{
		Name:             "  everyday   checking ",
		AccountType:      AccountChecking,
		CreditCardType:   &visa,
		Balance:          dec("10.456"),
		TotalDeposits:    decPtr("100"),
		TotalFixedIncome: decPtr("50"),
	}

	account.Normalize()

	assert.Equal(t, "Everyday Checking", account.Name)
	assert.Equal(t, "10.46", account.Balance.String())
	assert.Nil(t, account.CreditCardType)
	assert.Nil(t, account.TotalDeposits)
	assert.Nil(t, account.TotalFixedIncome)

	investment := &Account{Name: "brokerage", AccountType: AccountInvestment, Balance: dec("10"), TotalDeposits: decPtr("5.555")}
	investment.Normalize()
	require.NotNil(t, investment.TotalDeposits)
	assert.Equal(t, "5.56", investment.TotalDeposits.String())
}

func TestAccount_Validate(t *testing.T) {
	visa := CardVisa
	unknownCard := CreditCardType("Diners")

	tests := []struct {
		name    string
		account Account
		want    []string
	}{
		{
			name:    "valid checking",
			account: Account{Name: "Checking", AccountType: AccountChecking, Balance: dec("10")},
		},
		{
			name:    "valid credit card with debt",
			account: Account{Name: "Visa", AccountType: AccountCreditCard, CreditCardType: &visa, Balance: dec("-250")},
		},
		{
			name:    "missing name and unknown type",
			account: Account{AccountType: AccountType("Piggy_Bank")},
			want:    []string{"Name is required", "Invalid account type"},
		},
		{
			name:    "credit card without card type",
			account: Account{Name: "Card", AccountType: AccountCreditCard},
			want:    []string{"Invalid credit card type"},
		},
		{
			name:    "credit card with unknown card type",
			account: Account{Name: "Card", AccountType: AccountCreditCard, CreditCardType: &unknownCard},
			want:    []string{"Invalid credit card type"},
		},
		{
			name:    "negative savings",
			account: Account{Name: "Savings", AccountType: AccountSavings, Balance: dec("-1")},
			want:    []string{"Balance cannot be negative for this account type"},
		},
		{
			name:    "negative investment totals",
			account: Account{Name: "Brokerage", AccountType: AccountInvestment, TotalDeposits: decPtr("-1"), TotalFixedIncome: decPtr("-2")},
			want:    []string{"Total deposits cannot be negative", "Total fixed income cannot be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var problems *financeErrors.ValidationErrors
			require.ErrorAs(t, err, &problems)
			assert.Equal(t, tt.want, problems.Messages())
		})
	}
}

func TestAccount_InvestmentSummary(t *testing.T) {
	checking := &Account{AccountType: AccountChecking, Balance: dec("100")}
	assert.Nil(t, checking.InvestmentSummary())

	brokerage := &Account{AccountType: AccountInvestment, Balance: dec("1200"), TotalDeposits: decPtr("1000"), TotalFixedIncome: decPtr("300")}
	summary := brokerage.InvestmentSummary()
	require.NotNil(t, summary)
	assert.Equal(t, "900", summary.Equity.String())
	assert.Equal(t, "200", summary.GainLoss.String())
	assert.Equal(t, "20", summary.GainLossPercent.String())

	noDeposits := &Account{AccountType: AccountRetirement, Balance: dec("500")}
	summary = noDeposits.InvestmentSummary()
	assert.Equal(t, "500", summary.GainLoss.String())
	assert.Equal(t, "100", summary.GainLossPercent.String())

	empty := &Account{AccountType: AccountInvestment}
	assert.True(t, empty.InvestmentSummary().GainLossPercent.IsZero())
}
