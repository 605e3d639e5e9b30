package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	customerrepo "github.com/smallbiznis/plantdesk/internal/customer/repository"
	customerservice "github.com/smallbiznis/plantdesk/internal/customer/service"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	ledgerrepo "github.com/smallbiznis/plantdesk/internal/ledger/repository"
	ledgerservice "github.com/smallbiznis/plantdesk/internal/ledger/service"
	"github.com/smallbiznis/plantdesk/internal/migration"
	orderdomain "github.com/smallbiznis/plantdesk/internal/order/domain"
	orderrepo "github.com/smallbiznis/plantdesk/internal/order/repository"
	orderservice "github.com/smallbiznis/plantdesk/internal/order/service"
	productionrepo "github.com/smallbiznis/plantdesk/internal/production/repository"
	productionservice "github.com/smallbiznis/plantdesk/internal/production/service"
	"github.com/smallbiznis/plantdesk/internal/reference"
	referencedomain "github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/smallbiznis/plantdesk/internal/report/domain"
	"github.com/smallbiznis/plantdesk/internal/report/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	clock    *clock.FakeClock
	customer customerdomain.Service
	ledger   ledgerdomain.Service
	order    orderdomain.Service
	svc      domain.Service
	recipe   referencedomain.Recipe
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:report_service?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(now)
	ops := config.NewStaticOperationsConfigHolder(config.DefaultOperationsConfig())
	log := zap.NewNop()

	recipe := referencedomain.Recipe{ID: node.Generate(), Name: "C30/37", CreatedAt: now}
	require.NoError(t, db.Create(&recipe).Error)

	customerSvc := customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Repo: customerrepo.Provide(), Clock: fake, OpsConf: ops,
	})
	ledgerSvc := ledgerservice.NewService(ledgerservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake, Repo: ledgerrepo.Provide(), CustomerRepo: customerrepo.Provide(), OpsConf: ops,
	})
	productionSvc := productionservice.New(productionservice.Params{DB: db, Log: log, Repo: productionrepo.Provide()})
	orderSvc := orderservice.New(orderservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake,
		Repo: orderrepo.Provide(), PlanRepo: productionrepo.Provide(),
		CustomerRepo: customerrepo.Provide(), ReferenceRepo: reference.NewRepository(db),
		OpsConf: ops,
	})

	svc := New(Params{
		DB:            db,
		Log:           log,
		Clock:         fake,
		Repo:          repository.Provide(),
		CustomerSvc:   customerSvc,
		LedgerSvc:     ledgerSvc,
		OrderSvc:      orderSvc,
		ProductionSvc: productionSvc,
		OpsConf:       ops,
	})

	return &fixture{db: db, clock: fake, customer: customerSvc, ledger: ledgerSvc, order: orderSvc, svc: svc, recipe: recipe}
}

func TestReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acme, err := f.customer.Create(ctx, customerdomain.CreateCustomerRequest{Name: "Acme", Phone: "0212"})
	require.NoError(t, err)
	beton, err := f.customer.Create(ctx, customerdomain.CreateCustomerRequest{Name: "Beton Ltd"})
	require.NoError(t, err)

	_, err = f.ledger.Record(ctx, ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "DEBIT", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	_, err = f.ledger.Record(ctx, ledgerdomain.RecordEntryRequest{CustomerID: acme.ID.String(), Kind: "CREDIT", Amount: decimal.NewFromInt(200)})
	require.NoError(t, err)
	_, err = f.ledger.Record(ctx, ledgerdomain.RecordEntryRequest{CustomerID: beton.ID.String(), Kind: "DEBIT", Amount: decimal.RequireFromString("99.90")})
	require.NoError(t, err)

	// Beton ordered long ago, Acme just now.
	f.clock.Set(now.AddDate(0, 0, -120))
	_, err = f.order.Create(ctx, orderdomain.CreateOrderRequest{
		Name: "Eski", CustomerID: beton.ID.String(), RecipeID: f.recipe.ID.String(),
		Quantity: decimal.NewFromInt(6), Status: "completed",
	})
	require.NoError(t, err)
	f.clock.Set(now)
	_, err = f.order.Create(ctx, orderdomain.CreateOrderRequest{
		Name: "Yeni", CustomerID: acme.ID.String(), RecipeID: f.recipe.ID.String(),
		Quantity: decimal.NewFromInt(10), Status: "pending",
	})
	require.NoError(t, err)

	t.Run("directory", func(t *testing.T) {
		all, err := f.svc.CustomerDirectory(ctx, customerdomain.ActivityAll)
		require.NoError(t, err)
		require.Len(t, all.Rows, 2)
		assert.Equal(t, "Acme", all.Rows[0].Name)
		assert.True(t, all.Rows[0].Active)
		assert.Equal(t, "300", all.Rows[0].Balance.String())
		assert.False(t, all.Rows[1].Active)

		inactive, err := f.svc.CustomerDirectory(ctx, customerdomain.ActivityInactive)
		require.NoError(t, err)
		require.Len(t, inactive.Rows, 1)
		assert.Equal(t, "Beton Ltd", inactive.Rows[0].Name)
	})

	t.Run("balances", func(t *testing.T) {
		report, err := f.svc.BalanceReport(ctx)
		require.NoError(t, err)
		require.Len(t, report.Rows, 2)
		assert.Equal(t, "399.9", report.TotalBalance.String())
		assert.Equal(t, []any{"Acme", "500.00 TL", "200.00 TL", "300.00 TL"}, report.Table().Rows[0])
	})

	t.Run("statement", func(t *testing.T) {
		statement, err := f.svc.CustomerStatement(ctx, acme.ID.String())
		require.NoError(t, err)
		assert.Len(t, statement.Entries, 2)
		assert.Equal(t, "300", statement.Balance.Balance.String())

		_, err = f.svc.CustomerStatement(ctx, "404")
		assert.ErrorIs(t, err, customerdomain.ErrNotFound)
	})

	t.Run("production", func(t *testing.T) {
		report, err := f.svc.ProductionReport(ctx)
		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		assert.True(t, report.Rows[0].Planned.Equal(decimal.NewFromInt(16)))
		assert.True(t, report.Rows[0].Produced.Equal(decimal.NewFromInt(6)))
	})

	t.Run("orders", func(t *testing.T) {
		board, err := f.svc.OrderBoard(ctx)
		require.NoError(t, err)
		require.Len(t, board.Rows, 2)
		assert.Equal(t, "Yeni", board.Rows[0].Name)
		assert.Equal(t, orderdomain.StatusCompleted, board.Rows[1].Status)
	})
}
