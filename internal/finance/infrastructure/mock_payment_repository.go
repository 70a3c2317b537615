package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
)

var ErrMockInsert = errors.New("mock insert failed")

// MockPaymentRepository keeps payments in memory. FailInsertAt makes the n-th
// insert (1-based, counted across calls) fail; CreateMany then stores nothing.
type MockPaymentRepository struct {
	Payments     map[uuid.UUID]domain.Payment
	Err          error
	FailInsertAt int

	inserts int
}

func NewMockPaymentRepository(payments ...domain.Payment) *MockPaymentRepository {
	m := &MockPaymentRepository{Payments: make(map[uuid.UUID]domain.Payment)}
	for _, p := range payments {
		m.Payments[p.ID] = p
	}
	return m
}

func (m *MockPaymentRepository) insert() error {
	m.inserts++
	if m.FailInsertAt > 0 && m.inserts == m.FailInsertAt {
		return ErrMockInsert
	}
	return nil
}

func (m *MockPaymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	if m.Err != nil {
		return m.Err
	}
	if err := m.insert(); err != nil {
		return err
	}
	m.Payments[payment.ID] = *payment
	return nil
}

func (m *MockPaymentRepository) CreateMany(_ context.Context, payments []*domain.Payment) error {
	if m.Err != nil {
		return m.Err
	}
	for range payments {
		if err := m.insert(); err != nil {
			return err
		}
	}
	for _, p := range payments {
		m.Payments[p.ID] = *p
	}
	return nil
}

func (m *MockPaymentRepository) FindByID(_ context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	payment, ok := m.Payments[paymentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &payment, nil
}

func (m *MockPaymentRepository) filter(keep func(domain.Payment) bool) []domain.Payment {
	var payments []domain.Payment
	for _, p := range m.Payments {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].Date.Equal(payments[j].Date) {
			return payments[i].Date.Before(payments[j].Date)
		}
		return payments[i].ID.String() < payments[j].ID.String()
	})
	return payments
}

func (m *MockPaymentRepository) FindByUser(_ context.Context, userID string) ([]domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.filter(func(p domain.Payment) bool { return p.UserID == userID }), nil
}

func (m *MockPaymentRepository) FindByAccount(_ context.Context, accountID uuid.UUID) ([]domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.filter(func(p domain.Payment) bool { return p.AccountID == accountID }), nil
}

func (m *MockPaymentRepository) Update(_ context.Context, payment *domain.Payment) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	existing, ok := m.Payments[payment.ID]
	if !ok || existing.UserID != payment.UserID {
		return 0, nil
	}
	m.Payments[payment.ID] = *payment
	return 1, nil
}

func (m *MockPaymentRepository) Delete(_ context.Context, paymentID uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Payments, paymentID)
	return nil
}

func (m *MockPaymentRepository) FindUsersWithRecurring(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := make(map[string]bool)
	var users []string
	for _, p := range m.Payments {
		if p.IsRepeating() && !seen[p.UserID] {
			seen[p.UserID] = true
			users = append(users, p.UserID)
		}
	}
	sort.Strings(users)
	return users, nil
}
