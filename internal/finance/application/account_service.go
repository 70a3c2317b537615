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
)

type AccountService struct {
	repo   domain.AccountRepository
	cache  domain.CycleCache
	clock  clock.Clock
	logger *log.Logger
}

func NewAccountService(repo domain.AccountRepository, cache domain.CycleCache, clk clock.Clock, logger *log.Logger) *AccountService {
	return &AccountService{repo: repo, cache: cache, clock: clk, logger: logger}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID string, account *domain.Account) error {
	account.Normalize()
	if err := account.Validate(); err != nil {
		return err
	}

	now := s.clock.Now()
	account.ID = uuid.New()
	account.UserID = userID
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := s.repo.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID uuid.UUID, userID string) (*domain.Account, error) {
	return ownedAccount(ctx, s.repo, accountID, userID)
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount replaces the editable fields of an existing account.
func (s *AccountService) UpdateAccount(ctx context.Context, userID string, account *domain.Account) error {
	existing, err := ownedAccount(ctx, s.repo, account.ID, userID)
	if err != nil {
		return err
	}

	account.Normalize()
	if err := account.Validate(); err != nil {
		return err
	}
	account.UserID = userID
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = s.clock.Now()

	affected, err := s.repo.Update(ctx, account)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if affected == 0 {
		return financeErrors.ErrAccountNotFound
	}
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountID uuid.UUID, userID string) error {
	if _, err := ownedAccount(ctx, s.repo, accountID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	invalidateCycle(ctx, s.cache, s.logger, userID)
	return nil
}

func (s *AccountService) FormFields(accountType domain.AccountType) []domain.FormField {
	return domain.FormFields(accountType)
}

func (s *AccountService) AccountTypes() []domain.AccountGroup {
	return domain.AccountGroups
}

func ownedAccount(ctx context.Context, repo domain.AccountRepository, accountID uuid.UUID, userID string) (*domain.Account, error) {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrAccountNotFound
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, financeErrors.ErrUnauthorizedAccess
	}
	return account, nil
}

// invalidateCycle drops the user's cached cycle. A failure only costs a stale
// read until the entry expires, so it is logged and swallowed.
func invalidateCycle(ctx context.Context, cache domain.CycleCache, logger *log.Logger, userID string) {
	if err := cache.Invalidate(ctx, userID); err != nil {
		logger.Warn("failed to invalidate cycle cache", "user", userID, "err", err)
	}
}
