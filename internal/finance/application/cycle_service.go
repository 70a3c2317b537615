package application

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	financeErrors "github.com/sebuszqo/Expendas/internal/finance/errors"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/shopspring/decimal"
)

const (
	DefaultCycleDays = 30
	MaxCycleDays     = 366
)

var ErrInvalidCycleWindow = financeErrors.NewValidationError(fmt.Sprintf("Days must be between 1 and %d", MaxCycleDays))

// CycleService projects the user's payments onto the calendar.
type CycleService struct {
	payments domain.PaymentRepository
	accounts domain.AccountRepository
	cache    domain.CycleCache
	logger   *log.Logger
}

func NewCycleService(payments domain.PaymentRepository, accounts domain.AccountRepository, cache domain.CycleCache, logger *log.Logger) *CycleService {
	return &CycleService{payments: payments, accounts: accounts, cache: cache, logger: logger}
}

// Upcoming lists every occurrence in the days starting at from (inclusive),
// ordered by date, with a running balance per account.
func (s *CycleService) Upcoming(ctx context.Context, userID string, from time.Time, days int) ([]domain.CycleItem, error) {
	if days < 1 || days > MaxCycleDays {
		return nil, ErrInvalidCycleWindow
	}
	from = recurrence.DateOnly(from)

	version, err := s.cache.Version(ctx, userID)
	if err != nil {
		s.logger.Warn("cycle cache read failed", "user", userID, "err", err)
		return s.compute(ctx, userID, from, days)
	}

	cached, ok, err := s.cache.Get(ctx, userID, version, from, days)
	if err != nil {
		s.logger.Warn("cycle cache read failed", "user", userID, "err", err)
	} else if ok {
		return cached, nil
	}

	// A write after the version was read bumps it and leaves this entry unreachable.
	items, err := s.compute(ctx, userID, from, days)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, userID, version, from, days, items); err != nil {
		s.logger.Warn("cycle cache write failed", "user", userID, "err", err)
	}
	return items, nil
}

// WarmCache recomputes the cycle of every user with a repeating payment and
// returns how many were refreshed.
func (s *CycleService) WarmCache(ctx context.Context, from time.Time, days int) (int, error) {
	users, err := s.payments.FindUsersWithRecurring(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users with recurring payments: %w", err)
	}
	from = recurrence.DateOnly(from)

	warmed := 0
	for _, userID := range users {
		if ctx.Err() != nil {
			return warmed, ctx.Err()
		}
		version, err := s.cache.Version(ctx, userID)
		if err != nil {
			s.logger.Error("cycle cache read failed", "user", userID, "err", err)
			continue
		}
		items, err := s.compute(ctx, userID, from, days)
		if err != nil {
			s.logger.Error("cycle refresh failed", "user", userID, "err", err)
			continue
		}
		if err := s.cache.Set(ctx, userID, version, from, days, items); err != nil {
			s.logger.Error("cycle cache write failed", "user", userID, "err", err)
			continue
		}
		warmed++
	}
	return warmed, nil
}

func (s *CycleService) compute(ctx context.Context, userID string, from time.Time, days int) ([]domain.CycleItem, error) {
	accounts, err := s.accounts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.Balance
	}

	to := from.AddDate(0, 0, days-1)
	items := make([]domain.CycleItem, 0)
	for _, p := range payments {
		if _, ok := balances[p.AccountID]; !ok {
			continue
		}
		for _, date := range recurrence.Occurrences(p.Recurrence, from, to) {
			items = append(items, domain.CycleItem{
				Date:        date,
				PaymentID:   p.ID,
				AccountID:   p.AccountID,
				Description: p.Description,
				Amount:      p.Amount,
			})
		}
	}

	// Deposits land before withdrawals on the same day.
	slices.SortStableFunc(items, func(a, b domain.CycleItem) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.PaymentID.String(), b.PaymentID.String())
	})

	for i := range items {
		balance := balances[items[i].AccountID].Add(items[i].Amount)
		balances[items[i].AccountID] = balance
		items[i].BalanceAfter = balance
	}
	return items, nil
}
