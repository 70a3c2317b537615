package application

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sebuszqo/Expendas/internal/clock"
	"github.com/sebuszqo/Expendas/internal/finance/domain"
	"github.com/sebuszqo/Expendas/internal/finance/infrastructure"
	"github.com/sebuszqo/Expendas/internal/finance/recurrence"
	"github.com/shopspring/decimal"
)

const (
	owner    = "user-1"
	intruder = "user-2"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	accounts *infrastructure.MockAccountRepository
	payments *infrastructure.MockPaymentRepository
	cache    *infrastructure.MockCycleCache
	clock    *clock.FakeClock
	logger   *log.Logger

	checking domain.Account
	savings  domain.Account
	foreign  domain.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		checking: domain.Account{ID: uuid.New(), UserID: owner, Name: "Checking", AccountType: domain.AccountChecking, Balance: dec("1000")},
		savings:  domain.Account{ID: uuid.New(), UserID: owner, Name: "Savings", AccountType: domain.AccountSavings, Balance: dec("5000")},
		foreign:  domain.Account{ID: uuid.New(), UserID: intruder, Name: "Theirs", AccountType: domain.AccountChecking},
		payments: infrastructure.NewMockPaymentRepository(),
		cache:    infrastructure.NewMockCycleCache(),
		clock:    clock.NewFakeClock(now),
		logger:   log.New(io.Discard),
	}
	f.accounts = infrastructure.NewMockAccountRepository(f.checking, f.savings, f.foreign)
	return f
}

func (f *fixture) accountService() *AccountService {
	return NewAccountService(f.accounts, f.cache, f.clock, f.logger)
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(f.payments, f.accounts, f.cache, f.clock, f.logger)
}

func (f *fixture) cycleService() *CycleService {
	return NewCycleService(f.payments, f.accounts, f.cache, f.logger)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := recurrence.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func weeks(n int) *int {
	return &n
}
