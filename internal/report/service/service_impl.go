package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	orderdomain "github.com/smallbiznis/plantdesk/internal/order/domain"
	productiondomain "github.com/smallbiznis/plantdesk/internal/production/domain"
	"github.com/smallbiznis/plantdesk/internal/report/domain"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	Repo          domain.Repository
	CustomerSvc   customerdomain.Service
	LedgerSvc     ledgerdomain.Service
	OrderSvc      orderdomain.Service
	ProductionSvc productiondomain.Service
	OpsConf       *config.OperationsConfigHolder `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	repo          domain.Repository
	customerSvc   customerdomain.Service
	ledgerSvc     ledgerdomain.Service
	orderSvc      orderdomain.Service
	productionSvc productiondomain.Service
	opsConf       *config.OperationsConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("report.service"),
		clock:         p.Clock,
		repo:          p.Repo,
		customerSvc:   p.CustomerSvc,
		ledgerSvc:     p.LedgerSvc,
		orderSvc:      p.OrderSvc,
		productionSvc: p.ProductionSvc,
		opsConf:       p.OpsConf,
	}
}

func (s *Service) CustomerDirectory(ctx context.Context, activity customerdomain.Activity) (domain.CustomerDirectory, error) {
	activity, err := customerdomain.ParseActivity(string(activity))
	if err != nil {
		return domain.CustomerDirectory{}, err
	}

	ops := s.operations()
	since := s.clock.Now().AddDate(0, 0, -ops.Customers.ActivityWindowDays)
	entries, err := s.repo.ListDirectory(ctx, s.db, since)
	if err != nil {
		return domain.CustomerDirectory{}, err
	}

	balances, err := s.ledgerSvc.Balances(ctx)
	if err != nil {
		return domain.CustomerDirectory{}, err
	}
	byCustomer := make(map[snowflake.ID]decimal.Decimal, len(balances))
	for _, balance := range balances {
		byCustomer[balance.CustomerID] = balance.Balance
	}

	rows := make([]domain.DirectoryRow, 0, len(entries))
	for _, entry := range entries {
		switch {
		case activity == customerdomain.ActivityActive && !entry.Active,
			activity == customerdomain.ActivityInactive && entry.Active:
			continue
		}
		balance, ok := byCustomer[entry.ID]
		if !ok {
			balance = decimal.Zero
		}
		rows = append(rows, domain.DirectoryRow{
			CustomerID: entry.ID,
			Name:       entry.Name,
			Phone:      entry.Phone,
			TaxNumber:  entry.TaxNumber,
			Active:     entry.Active,
			Balance:    balance,
		})
	}

	return domain.CustomerDirectory{
		Activity:       activity,
		Since:          since,
		Rows:           rows,
		CurrencySuffix: ops.Ledger.CurrencySuffix,
	}, nil
}

func (s *Service) BalanceReport(ctx context.Context) (domain.BalanceReport, error) {
	balances, err := s.ledgerSvc.Balances(ctx)
	if err != nil {
		return domain.BalanceReport{}, err
	}

	report := domain.BalanceReport{
		Rows:           balances,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		TotalBalance:   decimal.Zero,
		CurrencySuffix: s.operations().Ledger.CurrencySuffix,
	}
	for _, balance := range balances {
		report.TotalDebit = report.TotalDebit.Add(balance.Debit)
		report.TotalCredit = report.TotalCredit.Add(balance.Credit)
		report.TotalBalance = report.TotalBalance.Add(balance.Balance)
	}
	return report, nil
}

func (s *Service) CustomerStatement(ctx context.Context, customerID string) (domain.CustomerStatement, error) {
	customer, err := s.customerSvc.GetByID(ctx, customerdomain.GetCustomerRequest{ID: customerID})
	if err != nil {
		return domain.CustomerStatement{}, err
	}

	entries, err := s.ledgerSvc.ListEntries(ctx, customerID)
	if err != nil {
		return domain.CustomerStatement{}, err
	}

	// balance of the listed entries
	balance := ledgerdomain.NewBalance(customer.ID, customer.Name, ledgerdomain.Fold(entries))

	return domain.CustomerStatement{
		Customer:       customer,
		Entries:        entries,
		Balance:        balance,
		CurrencySuffix: s.operations().Ledger.CurrencySuffix,
	}, nil
}

func (s *Service) ProductionReport(ctx context.Context) (domain.ProductionReport, error) {
	totals, err := s.productionSvc.RecipeSummary(ctx)
	if err != nil {
		return domain.ProductionReport{}, err
	}
	return domain.ProductionReport{Rows: totals}, nil
}

// OrderBoard walks every order page, newest first.
func (s *Service) OrderBoard(ctx context.Context) (domain.OrderBoard, error) {
	board := domain.OrderBoard{Rows: make([]orderdomain.OrderView, 0)}
	token := ""
	for {
		resp, err := s.orderSvc.List(ctx, orderdomain.ListOrderRequest{
			PageToken: token,
			PageSize:  pagination.MaxPageSize,
		})
		if err != nil {
			return domain.OrderBoard{}, err
		}
		board.Rows = append(board.Rows, resp.Orders...)
		if !resp.HasMore || resp.NextPageToken == "" {
			return board, nil
		}
		token = resp.NextPageToken
	}
}

func (s *Service) operations() config.OperationsConfig {
	if s.opsConf == nil {
		return config.DefaultOperationsConfig()
	}
	return s.opsConf.Get()
}
