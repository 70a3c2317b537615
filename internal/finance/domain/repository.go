package domain

import (
	"context"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, accountID uuid.UUID) (*Account, error)
	FindByUser(ctx context.Context, userID string) ([]Account, error)
	Update(ctx context.Context, account *Account) (int64, error)
	Delete(ctx context.Context, accountID uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	// CreateMany stores all payments or none of them.
	CreateMany(ctx context.Context, payments []*Payment) error
	FindByID(ctx context.Context, paymentID uuid.UUID) (*Payment, error)
	FindByUser(ctx context.Context, userID string) ([]Payment, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Payment, error)
	Update(ctx context.Context, payment *Payment) (int64, error)
	Delete(ctx context.Context, paymentID uuid.UUID) error
	FindUsersWithRecurring(ctx context.Context) ([]string, error)
}
