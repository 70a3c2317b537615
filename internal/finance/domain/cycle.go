package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CycleItem is one projected occurrence of a payment together with the
// account balance right after it.
type CycleItem struct {
	Date         time.Time       `json:"date"`
	PaymentID    uuid.UUID       `json:"payment_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// CycleCache keeps computed cycles per user. Entries are stored under the
// user's current version; Invalidate bumps the version, so a cycle computed
// before a write and stored after it is never read back. A miss is
// (nil, false, nil).
type CycleCache interface {
	Version(ctx context.Context, userID string) (int64, error)
	Get(ctx context.Context, userID string, version int64, from time.Time, days int) ([]CycleItem, bool, error)
	Set(ctx context.Context, userID string, version int64, from time.Time, days int, items []CycleItem) error
	Invalidate(ctx context.Context, userID string) error
}
