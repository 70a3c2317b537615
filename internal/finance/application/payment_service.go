package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
)

type PaymentService struct {
	payments domain.PaymentRepository
	accounts domain.AccountRepository
	cache    domain.CycleCache
	clock    clock.Clock
	logger   *log.Logger
}

func NewPaymentService(payments domain.PaymentRepository, accounts domain.AccountRepository, cache domain.CycleCache, clk clock.Clock, logger *log.Logger) *PaymentService {
	return &PaymentService{payments: payments, accounts: accounts, cache: cache, clock: clk, logger: logger}
}

// CreatePayment stores a payment whose Amount holds the magnitude typed by the
// user. The returned warnings are the advisory schedule problems.
func (s *PaymentService) CreatePayment(ctx context.Context, userID string, payment *domain.Payment, isIncome bool) ([]string, error) {
	payment.UserID = userID
	amount, err := domain.SignedAmount(payment.Amount, isIncome)
	if err != nil {
		return nil, err
	}
	payment.Amount = amount
	payment.Normalize()
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if _, err := ownedAccount(ctx, s.accounts, payment.AccountID, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	payment.ID = uuid.New()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return recurrence.Describe(payment.Recurrence).Errors, nil
}

func (s *PaymentService) UpdatePayment(ctx context.Context, userID string, payment *domain.Payment, isIncome bool) ([]string, error) {
	existing, err := s.GetPayment(ctx, payment.ID, userID)
	if err != nil {
		return nil, err
	}

	payment.UserID = userID
	amount, err := domain.SignedAmount(payment.Amount, isIncome)
	if err != nil {
		return nil, err
	}
	payment.Amount = amount
	payment.Normalize()
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if payment.AccountID != existing.AccountID {
		if _, err := ownedAccount(ctx, s.accounts, payment.AccountID, userID); err != nil {
			return nil, err
		}
	}
	payment.CreatedAt = existing.CreatedAt
	payment.UpdatedAt = s.clock.Now()

	affected, err := s.payments.Update(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	if affected == 0 {
		return nil, financeErrors.ErrPaymentNotFound
	}
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return recurrence.Describe(payment.Recurrence).Errors, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID, userID string) error {
	if _, err := s.GetPayment(ctx, paymentID, userID); err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return nil
}

func (s *PaymentService) GetPayment(ctx context.Context, paymentID uuid.UUID, userID string) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, financeErrors.ErrUnauthorizedAccess
	}
	return payment, nil
}

// ListPayments returns the user's payments, optionally only those of one account.
func (s *PaymentService) ListPayments(ctx context.Context, userID string, accountID *uuid.UUID) ([]domain.Payment, error) {
	var (
		payments []domain.Payment
		err      error
	)
	if accountID != nil {
		if _, err := ownedAccount(ctx, s.accounts, *accountID, userID); err != nil {
			return nil, err
		}
		payments, err = s.payments.FindByAccount(ctx, *accountID)
	} else {
		payments, err = s.payments.FindByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// CreateTransfer validates the transfer and stores its withdrawal and deposit
// together. Nothing is written when any check fails.
func (s *PaymentService) CreateTransfer(ctx context.Context, userID string, transfer *domain.Transfer) ([]*domain.Payment, []string, error) {
	if err := transfer.Validate(); err != nil {
		return nil, nil, err
	}

	from, err := ownedAccount(ctx, s.accounts, transfer.FromAccountID, userID)
	if err != nil {
		return nil, nil, err
	}
	to, err := ownedAccount(ctx, s.accounts, transfer.ToAccountID, userID)
	if err != nil {
		return nil, nil, err
	}

	withdrawal, deposit := transfer.Payments(userID, from, to)
	now := s.clock.Now()
	pair := []*domain.Payment{withdrawal, deposit}
	for _, p := range pair {
		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, nil, err
		}
		p.ID = uuid.New()
		p.CreatedAt = now
		p.UpdatedAt = now
	}

	if err := s.payments.CreateMany(ctx, pair); err != nil {
		return nil, nil, fmt.Errorf("create transfer: %w", err)
	}
	s.logger.Debug("transfer stored", "user", userID, "from", from.ID, "to", to.ID, "amount", deposit.Amount)
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return pair, recurrence.Describe(withdrawal.Recurrence).Errors, nil
}
