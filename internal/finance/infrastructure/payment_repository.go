package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Integer arrays travel as their text form ("{1,15}") so they do not depend
// on the driver's array support.
const selectPayments = `
    SELECT id, user_id, account_id, amount, description, is_paycheck, date, repeats_weekly,
           repeats_on_days_of_month::text, repeats_on_months_of_year::text, repeats_until_date,
           created_at, updated_at
    FROM payments`

const insertPayment = `
    INSERT INTO payments (id, user_id, account_id, amount, description, is_paycheck, date, repeats_weekly,
                          repeats_on_days_of_month, repeats_on_months_of_year, repeats_until_date,
                          created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::text::int[], $10::text::int[], $11, $12, $13)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return insert(ctx, r.db, payment)
}

// CreateMany inserts every payment inside one transaction.
func (r *PaymentRepository) CreateMany(ctx context.Context, payments []*domain.Payment) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	for _, payment := range payments {
		if err = insert(ctx, tx, payment); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insert(ctx context.Context, db execer, p *domain.Payment) error {
	_, err := db.ExecContext(ctx, insertPayment,
		p.ID, p.UserID, p.AccountID, p.Amount, p.Description, p.IsPaycheck, p.Date,
		nullWeeks(p.RepeatsWeekly), intArray(p.RepeatsOnDaysOfMonth), intArray(p.RepeatsOnMonthsOfYear),
		nullDate(p.RepeatsUntilDate), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// FindByID returns sql.ErrNoRows when the payment does not exist.
func (r *PaymentRepository) FindByID(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	row := r.db.QueryRowContext(ctx, selectPayments+` WHERE id = $1`, paymentID)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return r.query(ctx, selectPayments+` WHERE user_id = $1 ORDER BY date, created_at`, userID)
}

func (r *PaymentRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Payment, error) {
	return r.query(ctx, selectPayments+` WHERE account_id = $1 ORDER BY date, created_at`, accountID)
}

func (r *PaymentRepository) query(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
        UPDATE payments
        SET account_id = $2, amount = $3, description = $4, is_paycheck = $5, date = $6, repeats_weekly = $7,
            repeats_on_days_of_month = $8::text::int[], repeats_on_months_of_year = $9::text::int[],
            repeats_until_date = $10, updated_at = $11
        WHERE id = $1 AND user_id = $12`,
		p.ID, p.AccountID, p.Amount, p.Description, p.IsPaycheck, p.Date, nullWeeks(p.RepeatsWeekly),
		intArray(p.RepeatsOnDaysOfMonth), intArray(p.RepeatsOnMonthsOfYear), nullDate(p.RepeatsUntilDate),
		p.UpdatedAt, p.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, paymentID)
	return err
}

func (r *PaymentRepository) FindUsersWithRecurring(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT DISTINCT user_id FROM payments
        WHERE repeats_weekly IS NOT NULL OR cardinality(repeats_on_days_of_month) > 0
        ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		users = append(users, userID)
	}
	return users, rows.Err()
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p      domain.Payment
		weeks  sql.NullInt64
		days   pq.Int64Array
		months pq.Int64Array
		until  sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.AccountID, &p.Amount, &p.Description, &p.IsPaycheck, &p.Date,
		&weeks, &days, &months, &until, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Date = recurrence.DateOnly(p.Date)
	if weeks.Valid {
		n := int(weeks.Int64)
		p.RepeatsWeekly = &n
	}
	p.RepeatsOnDaysOfMonth = fromIntArray(days)
	p.RepeatsOnMonthsOfYear = fromIntArray(months)
	if until.Valid {
		d := recurrence.DateOnly(until.Time)
		p.RepeatsUntilDate = &d
	}
	return &p, nil
}

func intArray(values []int) pq.Int64Array {
	out := make(pq.Int64Array, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}

func fromIntArray(values pq.Int64Array) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

func nullWeeks(weeks *int) sql.NullInt64 {
	if weeks == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*weeks), Valid: true}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
