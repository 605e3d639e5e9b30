package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	obsmetrics "github.com/smallbiznis/plantdesk/internal/observability/metrics"
	"github.com/smallbiznis/plantdesk/internal/observability/tracing"
	"github.com/smallbiznis/plantdesk/pkg/money"
	"github.com/smallbiznis/plantdesk/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         ledgerdomain.Repository
	CustomerRepo customerdomain.Repository
	OpsConf      *config.OperationsConfigHolder `optional:"true"`
	ObsMetrics   *obsmetrics.Metrics            `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         ledgerdomain.Repository
	customerRepo customerdomain.Repository
	opsConf      *config.OperationsConfigHolder
	obsMetrics   *obsmetrics.Metrics
}

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("ledger.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		opsConf:      p.OpsConf,
		obsMetrics:   p.ObsMetrics,
	}
}

// Record appends one movement to the customer's ledger.
func (s *Service) Record(ctx context.Context, req ledgerdomain.RecordEntryRequest) (_ ledgerdomain.LedgerEntry, err error) {
	ctx, span := tracing.Start(ctx, "ledger.record", attribute.String("kind", req.Kind))
	defer func() { tracing.End(span, err) }()

	kind := ledgerdomain.EntryKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		return ledgerdomain.LedgerEntry{}, ledgerdomain.ErrInvalidKind
	}

	amountMinor, err := s.amountMinor(req)
	if err != nil {
		return ledgerdomain.LedgerEntry{}, err
	}

	if err := validation.Struct(req); err != nil {
		return ledgerdomain.LedgerEntry{}, err
	}

	customer, err := s.findCustomer(ctx, req.CustomerID)
	if err != nil {
		return ledgerdomain.LedgerEntry{}, err
	}

	now := s.clock.Now()
	occurredAt := now
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	entry := ledgerdomain.LedgerEntry{
		ID:          s.genID.Generate(),
		CustomerID:  customer.ID,
		Kind:        kind,
		AmountMinor: amountMinor,
		Amount:      money.FromMinor(amountMinor),
		Note:        strings.TrimSpace(req.Note),
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		s.log.Error("failed to record ledger entry",
			zap.String("customer_id", customer.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return ledgerdomain.LedgerEntry{}, err
	}

	s.obsMetrics.RecordLedgerEntry(ctx, string(kind))
	s.log.Info("ledger entry recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.String("kind", string(kind)),
		zap.Int64("amount_minor", amountMinor),
	)

	return entry, nil
}

func (s *Service) ListEntries(ctx context.Context, customerID string) ([]ledgerdomain.LedgerEntry, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByCustomer(ctx, s.db, customer.ID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Amount = money.FromMinor(entries[i].AmountMinor)
	}
	return entries, nil
}

func (s *Service) Balance(ctx context.Context, customerID string) (ledgerdomain.Balance, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return ledgerdomain.Balance{}, err
	}

	totals, err := s.repo.Totals(ctx, s.db, customer.ID)
	if err != nil {
		return ledgerdomain.Balance{}, err
	}

	return ledgerdomain.NewBalance(customer.ID, customer.Name, totals), nil
}

func (s *Service) Balances(ctx context.Context) ([]ledgerdomain.Balance, error) {
	rows, err := s.repo.AllTotals(ctx, s.db)
	if err != nil {
		return nil, err
	}

	balances := make([]ledgerdomain.Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, ledgerdomain.NewBalance(row.CustomerID, row.CustomerName, row.Totals))
	}
	return balances, nil
}

func (s *Service) amountMinor(req ledgerdomain.RecordEntryRequest) (int64, error) {
	if req.Amount.IsNegative() {
		return 0, ledgerdomain.ErrInvalidAmount
	}
	if req.Amount.IsZero() && s.requirePositive() {
		return 0, ledgerdomain.ErrInvalidAmount
	}

	minor, err := money.ToMinor(req.Amount)
	if err != nil {
		if errors.Is(err, money.ErrTooPrecise) {
			return 0, ledgerdomain.ErrInvalidAmountPrecision
		}
		if errors.Is(err, money.ErrOutOfRange) {
			return 0, ledgerdomain.ErrInvalidAmount
		}
		return 0, err
	}
	return minor, nil
}

func (s *Service) findCustomer(ctx context.Context, value string) (*customerdomain.Customer, error) {
	id, err := customerdomain.ParseID(value)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ledgerdomain.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *Service) requirePositive() bool {
	if s.opsConf == nil {
		return false
	}
	return s.opsConf.Get().Ledger.RequirePositiveAmount
}
