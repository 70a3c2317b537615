package infrastructure

import (
	"context"
	"time"

	"github.com/sebuszqo/Expendas/internal/finance/domain"
)

// MockCycleCache is an in-memory CycleCache that records invalidations.
// BeforeSet, when set, runs at the start of every Set.
type MockCycleCache struct {
	Entries     map[string][]domain.CycleItem
	Versions    map[string]int64
	Invalidated []string
	Err         error
	BeforeSet   func()
}

func NewMockCycleCache() *MockCycleCache {
	return &MockCycleCache{
		Entries:  make(map[string][]domain.CycleItem),
		Versions: make(map[string]int64),
	}
}

func (m *MockCycleCache) Version(_ context.Context, userID string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Versions[userID], nil
}

func (m *MockCycleCache) Get(_ context.Context, userID string, version int64, from time.Time, days int) ([]domain.CycleItem, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	items, ok := m.Entries[cycleKey(userID, version, from, days)]
	return items, ok, nil
}

func (m *MockCycleCache) Set(_ context.Context, userID string, version int64, from time.Time, days int, items []domain.CycleItem) error {
	if m.BeforeSet != nil {
		m.BeforeSet()
	}
	if m.Err != nil {
		return m.Err
	}
	m.Entries[cycleKey(userID, version, from, days)] = items
	return nil
}

func (m *MockCycleCache) Invalidate(_ context.Context, userID string) error {
	m.Invalidated = append(m.Invalidated, userID)
	if m.Err != nil {
		return m.Err
	}
	m.Versions[userID]++
	return nil
}
