package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	"github.com/smallbiznis/plantdesk/internal/customer/domain"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"github.com/smallbiznis/plantdesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clock   clock.Clock
	OpsConf *config.OperationsConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	clock   clock.Clock
	opsConf *config.OperationsConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("customer.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clock:   p.Clock,
		opsConf: p.OpsConf,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	if err := validation.Struct(req); err != nil {
		return domain.Customer{}, err
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		TaxNumber: strings.TrimSpace(req.TaxNumber),
		TaxOffice: strings.TrimSpace(req.TaxOffice),
		Phone:     strings.TrimSpace(req.Phone),
		Fax:       strings.TrimSpace(req.Fax),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		District:  strings.TrimSpace(req.District),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	if err := validation.Struct(req); err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	applyString(&item.Name, req.Name)
	applyString(&item.TaxNumber, req.TaxNumber)
	applyString(&item.TaxOffice, req.TaxOffice)
	applyString(&item.Phone, req.Phone)
	applyString(&item.Fax, req.Fax)
	applyString(&item.Address, req.Address)
	applyString(&item.City, req.City)
	applyString(&item.District, req.District)
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Customer{}, err
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	activity, err := domain.ParseActivity(string(req.Activity))
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	filter := domain.ListCustomerFilter{
		Name:        strings.TrimSpace(req.Name),
		Activity:    activity,
		ActiveSince: s.activeSince(),
	}

	page := pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	}
	items, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, page.Size(), func(customer *domain.ListedCustomer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        customer.ID.String(),
			CreatedAt: customer.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})

	customers := make([]domain.ListedCustomer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	resp := domain.ListCustomerResponse{Customers: customers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

// Activity reports whether the customer placed an order inside the configured window.
func (s *Service) Activity(ctx context.Context, req domain.GetCustomerRequest) (domain.CustomerActivity, error) {
	customer, err := s.GetByID(ctx, req)
	if err != nil {
		return domain.CustomerActivity{}, err
	}

	last, err := s.repo.LastOrderAt(ctx, s.db, customer.ID)
	if err != nil {
		return domain.CustomerActivity{}, err
	}

	since := s.activeSince()
	return domain.CustomerActivity{
		CustomerID:  customer.ID,
		Active:      last != nil && !last.Before(since),
		LastOrderAt: last,
		Since:       since,
		WindowDays:  s.windowDays(),
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db)
}

func (s *Service) activeSince() time.Time {
	return s.clock.Now().AddDate(0, 0, -s.windowDays())
}

func (s *Service) windowDays() int {
	if s.opsConf == nil {
		return config.DefaultOperationsConfig().Customers.ActivityWindowDays
	}
	return s.opsConf.Get().Customers.ActivityWindowDays
}

func applyString(dst *string, value *string) {
	if value == nil {
		return
	}
	*dst = strings.TrimSpace(*value)
}
