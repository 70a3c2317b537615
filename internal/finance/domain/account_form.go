package domain

type AccountCategory string

const (
	CategoryBank       AccountCategory = "bank"
	CategoryCreditCard AccountCategory = "credit_card"
	CategoryLoan       AccountCategory = "loan"
	CategoryInvestment AccountCategory = "investment"
)

const (
	FieldName             = "name"
	FieldAccountType      = "account_type"
	FieldCreditCardType   = "credit_card_type"
	FieldBalance          = "balance"
	FieldTotalDeposits    = "total_deposits"
	FieldTotalFixedIncome = "total_fixed_income"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindSelect   FieldKind = "select"
	KindCurrency FieldKind = "currency"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormField describes one input of the account editor.
type FormField struct {
	Name          string    `json:"name"`
	Kind          FieldKind `json:"kind"`
	Label         string    `json:"label,omitempty"`
	Options       []Option  `json:"options,omitempty"`
	AllowNegative bool      `json:"allow_negative,omitempty"`
	Capitalize    bool      `json:"capitalize,omitempty"`
}

// CategoryOf maps an account type to the category that decides its fields.
// Unknown types fall back to the plain bank layout.
func CategoryOf(t AccountType) AccountCategory {
	switch {
	case t == AccountCreditCard:
		return CategoryCreditCard
	case t.IsDebt():
		return CategoryLoan
	case t.IsInvestment():
		return CategoryInvestment
	default:
		return CategoryBank
	}
}

func FormFields(t AccountType) []FormField {
	return CategoryOf(t).Fields()
}

func (c AccountCategory) Fields() []FormField {
	fields := []FormField{
		{Name: FieldName, Kind: KindText, Label: "Name", Capitalize: true},
		{Name: FieldAccountType, Kind: KindSelect, Label: "Account Type", Options: accountTypeOptions()},
	}
	switch c {
	case CategoryCreditCard:
		fields = append(fields,
			FormField{Name: FieldCreditCardType, Kind: KindSelect, Label: "Credit Card Type", Options: creditCardOptions()},
			FormField{Name: FieldBalance, Kind: KindCurrency, Label: "Balance", AllowNegative: true},
		)
	case CategoryLoan:
		fields = append(fields, FormField{Name: FieldBalance, Kind: KindCurrency, Label: "Balance", AllowNegative: true})
	case CategoryInvestment:
		fields = append(fields,
			FormField{Name: FieldBalance, Kind: KindCurrency, Label: "Current Balance"},
			FormField{Name: FieldTotalDeposits, Kind: KindCurrency, Label: "Total Deposits"},
			FormField{Name: FieldTotalFixedIncome, Kind: KindCurrency, Label: "Total Fixed Income"},
		)
	default:
		fields = append(fields, FormField{Name: FieldBalance, Kind: KindCurrency, Label: "Balance"})
	}
	return fields
}

func (c AccountCategory) fieldSet() map[string]bool {
	set := make(map[string]bool)
	for _, f := range c.Fields() {
		set[f.Name] = true
	}
	return set
}

func accountTypeOptions() []Option {
	var options []Option
	for _, g := range AccountGroups {
		for _, t := range g.Types {
			options = append(options, Option{Value: string(t), Label: DisplayAccountType(t)})
		}
	}
	return options
}

func creditCardOptions() []Option {
	options := make([]Option, len(CreditCardTypes))
	for i, c := range CreditCardTypes {
		options[i] = Option{Value: string(c), Label: DisplayAccountType(AccountType(c))}
	}
	return options
}
