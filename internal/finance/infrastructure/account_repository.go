package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, name, account_type, credit_card_type, balance, total_deposits, total_fixed_income, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID, account.UserID, account.Name, account.AccountType, creditCardValue(account.CreditCardType),
		account.Balance, nullDecimal(account.TotalDeposits), nullDecimal(account.TotalFixedIncome),
		account.CreatedAt, account.UpdatedAt,
	)
	return err
}

// FindByID returns sql.ErrNoRows when the account does not exist.
func (r *AccountRepository) FindByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, accountID)
	return scanAccount(row)
}

func (r *AccountRepository) FindByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY name, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts
        SET name = $2, account_type = $3, credit_card_type = $4, balance = $5,
            total_deposits = $6, total_fixed_income = $7, updated_at = $8
        WHERE id = $1 AND user_id = $9`,
		account.ID, account.Name, account.AccountType, creditCardValue(account.CreditCardType), account.Balance,
		nullDecimal(account.TotalDeposits), nullDecimal(account.TotalFixedIncome), account.UpdatedAt, account.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *AccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		account          domain.Account
		creditCardType   sql.NullString
		totalDeposits    decimal.NullDecimal
		totalFixedIncome decimal.NullDecimal
	)
	err := row.Scan(&account.ID, &account.UserID, &account.Name, &account.AccountType, &creditCardType,
		&account.Balance, &totalDeposits, &totalFixedIncome, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if creditCardType.Valid {
		cardType := domain.CreditCardType(creditCardType.String)
		account.CreditCardType = &cardType
	}
	if totalDeposits.Valid {
		account.TotalDeposits = &totalDeposits.Decimal
	}
	if totalFixedIncome.Valid {
		account.TotalFixedIncome = &totalFixedIncome.Decimal
	}
	return &account, nil
}

func creditCardValue(c *domain.CreditCardType) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*c), Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
