package infrastructure

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
)

// MockAccountRepository keeps accounts in memory. Err, when set, is returned
// by every call.
type MockAccountRepository struct {
	Accounts map[uuid.UUID]domain.Account
	Err      error
}

func NewMockAccountRepository(accounts ...domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{Accounts: make(map[uuid.UUID]domain.Account)}
	for _, a := range accounts {
		m.Accounts[a.ID] = a
	}
	return m
}

func (m *MockAccountRepository) Create(_ context.Context, account *domain.Account) error {
	if m.Err != nil {
		return m.Err
	}
	m.Accounts[account.ID] = *account
	return nil
}

func (m *MockAccountRepository) FindByID(_ context.Context, accountID uuid.UUID) (*domain.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	account, ok := m.Accounts[accountID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &account, nil
}

func (m *MockAccountRepository) FindByUser(_ context.Context, userID string) ([]domain.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var accounts []domain.Account
	for _, a := range m.Accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (m *MockAccountRepository) Update(_ context.Context, account *domain.Account) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	existing, ok := m.Accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return 0, nil
	}
	m.Accounts[account.ID] = *account
	return 1, nil
}

func (m *MockAccountRepository) Delete(_ context.Context, accountID uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Accounts, accountID)
	return nil
}
