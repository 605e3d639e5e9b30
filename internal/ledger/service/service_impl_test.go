package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	customerrepo "github.com/smallbiznis/plantdesk/internal/customer/repository"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	"github.com/smallbiznis/plantdesk/internal/ledger/repository"
	"github.com/smallbiznis/plantdesk/internal/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(now)
	svc := NewService(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        fake,
		Repo:         repository.Provide(),
		CustomerRepo: customerrepo.Provide(),
		OpsConf:      config.NewStaticOperationsConfigHolder(config.DefaultOperationsConfig()),
	}).(*Service)
	return &fixture{db: db, node: node, clock: fake, svc: svc}
}

func (f *fixture) createCustomer(t *testing.T, name string) customerdomain.Customer {
	t.Helper()
	customer := customerdomain.Customer{ID: f.node.Generate(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, customerrepo.Provide().Insert(context.Background(), f.db, &customer))
	return customer
}

func TestAcmeBalanceScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.createCustomer(t, "Acme")

	balance, err := f.svc.Balance(ctx, acme.ID.String())
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())

	_, err = f.svc.Record(ctx, ledgerdomain.RecordEntryRequest{
		CustomerID: acme.ID.String(),
		Kind:       "DEBIT",
		Amount:     decimal.RequireFromString("500.00"),
		Note:       "C30 teslimat",
	})
	require.NoError(t, err)

	balance, err = f.svc.Balance(ctx, acme.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "500", balance.Balance.String())

	f.clock.Advance(time.Minute)
	_, err = f.svc.Record(ctx, ledgerdomain.RecordEntryRequest{
		CustomerID: acme.ID.String(),
		Kind:       "credit",
		Amount:     decimal.RequireFromString("200.00"),
	})
	require.NoError(t, err)

	balance, err = f.svc.Balance(ctx, acme.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "500", balance.Debit.String())
	assert.Equal(t, "200", balance.Credit.String())
	assert.Equal(t, "300", balance.Balance.String())

	entries, err := f.svc.ListEntries(ctx, acme.ID.String())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ledgerdomain.KindCredit, entries[0].Kind)
	assert.Equal(t, "200", entries[0].Amount.String())

	folded := ledgerdomain.Fold(entries)
	assert.Equal(t, int64(30000), folded.BalanceMinor())
}

func TestRecordValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.createCustomer(t, "Acme")

	cases := []struct {
		name string
		req  ledgerdomain.RecordEntryRequest
		want error
	}{
		{
			name: "unknown kind",
			req:  ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "REFUND", Amount: decimal.NewFromInt(1)},
			want: ledgerdomain.ErrInvalidKind,
		},
		{
			name: "negative amount",
			req:  ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "DEBIT", Amount: decimal.NewFromInt(-5)},
			want: ledgerdomain.ErrInvalidAmount,
		},
		{
			name: "sub-cent amount",
			req:  ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "DEBIT", Amount: decimal.RequireFromString("1.005")},
			want: ledgerdomain.ErrInvalidAmountPrecision,
		},
		{
			name: "amount past storage range",
			req:  ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "DEBIT", Amount: decimal.RequireFromString("100000000000000000")},
			want: ledgerdomain.ErrInvalidAmount,
		},
		{
			name: "unknown customer",
			req:  ledgerdomain.RecordEntryRequest{CustomerID: "99", Kind: "DEBIT", Amount: decimal.NewFromInt(1)},
			want: ledgerdomain.ErrCustomerNotFound,
		},
		{
			name: "malformed customer",
			req:  ledgerdomain.RecordEntryRequest{CustomerID: "acme", Kind: "DEBIT", Amount: decimal.NewFromInt(1)},
			want: customerdomain.ErrInvalidID,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Record(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	entries, err := f.svc.ListEntries(ctx, acme.ID.String())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLargestAmountKeepsBalanceSign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.createCustomer(t, "Acme")

	entry, err := f.svc.Record(ctx, ledgerdomain.RecordEntryRequest{
		CustomerID: acme.ID.String(),
		Kind:       "DEBIT",
		Amount:     decimal.RequireFromString("92233720368547758.07"),
	})
	require.NoError(t, err)
	assert.Positive(t, entry.AmountMinor)

	_, err = f.svc.Record(ctx, ledgerdomain.RecordEntryRequest{
		CustomerID: acme.ID.String(),
		Kind:       "DEBIT",
		Amount:     decimal.RequireFromString("100000000000000000"),
	})
	require.ErrorIs(t, err, ledgerdomain.ErrInvalidAmount)

	balance, err := f.svc.Balance(ctx, acme.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "92233720368547758.07", balance.Balance.String())
}

func TestRecordZeroAmountDependsOnConfig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.createCustomer(t, "Acme")

	req := ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "DEBIT", Amount: decimal.Zero}
	_, err := f.svc.Record(ctx, req)
	require.NoError(t, err)

	ops := config.DefaultOperationsConfig()
	ops.Ledger.RequirePositiveAmount = true
	f.svc.opsConf = config.NewStaticOperationsConfigHolder(ops)

	_, err = f.svc.Record(ctx, req)
	assert.ErrorIs(t, err, ledgerdomain.ErrInvalidAmount)
}

func TestBalancesIncludeCustomersWithoutEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.createCustomer(t, "Acme")
	f.createCustomer(t, "Beton Ltd")

	_, err := f.svc.Record(ctx, ledgerdomain.RecordEntryRequest{
		CustomerID: acme.ID.String(),
		Kind:       "DEBIT",
		Amount:     decimal.RequireFromString("1250.75"),
	})
	require.NoError(t, err)

	balances, err := f.svc.Balances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "Acme", balances[0].CustomerName)
	assert.Equal(t, "1250.75", balances[0].Balance.String())
	assert.Equal(t, "Beton Ltd", balances[1].CustomerName)
	assert.True(t, balances[1].Balance.IsZero())
}
