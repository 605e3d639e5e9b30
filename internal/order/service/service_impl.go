package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	obsmetrics "github.com/smallbiznis/plantdesk/internal/observability/metrics"
	"github.com/smallbiznis/plantdesk/internal/observability/tracing"
	orderdomain "github.com/smallbiznis/plantdesk/internal/order/domain"
	productiondomain "github.com/smallbiznis/plantdesk/internal/production/domain"
	referencedomain "github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"github.com/smallbiznis/plantdesk/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          orderdomain.Repository
	PlanRepo      productiondomain.Repository
	CustomerRepo  customerdomain.Repository
	ReferenceRepo referencedomain.Repository
	OpsConf       *config.OperationsConfigHolder `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics            `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          orderdomain.Repository
	planRepo      productiondomain.Repository
	customerRepo  customerdomain.Repository
	referenceRepo referencedomain.Repository
	opsConf       *config.OperationsConfigHolder
	obsMetrics    *obsmetrics.Metrics
}

func New(p Params) orderdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("order.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		planRepo:      p.PlanRepo,
		customerRepo:  p.CustomerRepo,
		referenceRepo: p.ReferenceRepo,
		opsConf:       p.OpsConf,
		obsMetrics:    p.ObsMetrics,
	}
}

// Create stores the order together with its status row and production plan.
// Either all three rows are written or none is.
func (s *Service) Create(ctx context.Context, req orderdomain.CreateOrderRequest) (_ orderdomain.OrderView, err error) {
	ctx, span := tracing.Start(ctx, "order.create", attribute.String("status", req.Status))
	defer func() { tracing.End(span, err) }()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return orderdomain.OrderView{}, orderdomain.ErrInvalidName
	}
	if !orderdomain.ValidQuantity(req.Quantity) {
		return orderdomain.OrderView{}, orderdomain.ErrInvalidQuantity
	}
	status, err := orderdomain.ParseStatus(req.Status)
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	if err := validation.Struct(req); err != nil {
		return orderdomain.OrderView{}, err
	}

	order, err := s.buildOrder(ctx, name, req)
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	order.Completed = status == orderdomain.StatusCompleted

	produced := decimal.Zero
	if status == orderdomain.StatusCompleted {
		produced = req.Quantity
	}

	now := order.CreatedAt
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, order); err != nil {
			return err
		}
		if err := s.repo.InsertStatus(ctx, tx, &orderdomain.OrderStatus{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			Status:    status,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		return s.planRepo.Insert(ctx, tx, &productiondomain.ProductionPlan{
			ID:               s.genID.Generate(),
			OrderID:          order.ID,
			RecipeName:       order.RecipeName,
			PlannedQuantity:  req.Quantity,
			ProducedQuantity: produced,
			Status:           string(status),
			PlannedAt:        now,
		})
	})
	if err != nil {
		s.log.Error("failed to create order",
			zap.String("customer_id", order.CustomerID.String()),
			zap.Error(err),
		)
		return orderdomain.OrderView{}, err
	}

	s.obsMetrics.RecordOrderCreated(ctx, string(status))
	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.String("status", string(status)),
	)

	return orderdomain.OrderView{Order: *order, Status: status}, nil
}

// TransitionStatus moves the order to a new status and refreshes the caches
// derived from it.
func (s *Service) TransitionStatus(ctx context.Context, req orderdomain.TransitionStatusRequest) (_ orderdomain.OrderView, err error) {
	ctx, span := tracing.Start(ctx, "order.transition_status", attribute.String("status", req.Status))
	defer func() { tracing.End(span, err) }()

	id, err := orderdomain.ParseID(req.OrderID)
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	next, err := orderdomain.ParseStatus(req.Status)
	if err != nil {
		return orderdomain.OrderView{}, err
	}

	var (
		view     *orderdomain.OrderView
		previous orderdomain.Status
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return orderdomain.ErrNotFound
		}
		previous = current.Status
		if !orderdomain.CanTransition(previous, next, s.strictTransitions()) {
			return orderdomain.ErrInvalidTransition
		}

		if err := s.repo.UpsertStatus(ctx, tx, &orderdomain.OrderStatus{
			ID:        s.genID.Generate(),
			OrderID:   id,
			Status:    next,
			UpdatedAt: s.clock.Now(),
		}); err != nil {
			return err
		}
		if err := s.repo.SetCompleted(ctx, tx, id, next == orderdomain.StatusCompleted); err != nil {
			return err
		}

		plan, err := s.planRepo.FindByOrderID(ctx, tx, id)
		if err != nil {
			return err
		}
		if plan != nil {
			if err := s.planRepo.UpdateStatus(ctx, tx, id, string(next), next == orderdomain.StatusCompleted); err != nil {
				return err
			}
		}

		view, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	if view == nil {
		return orderdomain.OrderView{}, orderdomain.ErrNotFound
	}

	s.obsMetrics.RecordStatusTransition(ctx, string(previous), string(next))
	s.log.Info("order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)

	return *view, nil
}

// UpdateQuantity changes the ordered volume and the planned volume with it.
func (s *Service) UpdateQuantity(ctx context.Context, req orderdomain.UpdateQuantityRequest) (orderdomain.OrderView, error) {
	id, err := orderdomain.ParseID(req.OrderID)
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	if !orderdomain.ValidQuantity(req.Quantity) {
		return orderdomain.OrderView{}, orderdomain.ErrInvalidQuantity
	}

	var view *orderdomain.OrderView
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return orderdomain.ErrNotFound
		}

		if err := s.repo.UpdateQuantity(ctx, tx, id, req.Quantity.String()); err != nil {
			return err
		}
		producedFollows := current.Status == orderdomain.StatusCompleted
		if err := s.planRepo.UpdatePlanned(ctx, tx, id, req.Quantity, producedFollows); err != nil {
			return err
		}

		view, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	if view == nil {
		return orderdomain.OrderView{}, orderdomain.ErrNotFound
	}

	return *view, nil
}

func (s *Service) GetByID(ctx context.Context, value string) (orderdomain.OrderView, error) {
	id, err := orderdomain.ParseID(value)
	if err != nil {
		return orderdomain.OrderView{}, err
	}

	view, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return orderdomain.OrderView{}, err
	}
	if view == nil {
		return orderdomain.OrderView{}, orderdomain.ErrNotFound
	}
	return *view, nil
}

func (s *Service) List(ctx context.Context, req orderdomain.ListOrderRequest) (orderdomain.ListOrderResponse, error) {
	var filter orderdomain.ListOrderFilter
	if strings.TrimSpace(req.CustomerID) != "" {
		id, err := customerdomain.ParseID(req.CustomerID)
		if err != nil {
			return orderdomain.ListOrderResponse{}, orderdomain.ErrInvalidCustomer
		}
		filter.CustomerID = id
	}
	if strings.TrimSpace(req.Status) != "" {
		status, err := orderdomain.ParseStatus(req.Status)
		if err != nil {
			return orderdomain.ListOrderResponse{}, err
		}
		filter.Status = status
	}

	page := pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	}
	items, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return orderdomain.ListOrderResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, page.Size(), func(order *orderdomain.OrderView) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        order.ID.String(),
			CreatedAt: order.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})

	orders := make([]orderdomain.OrderView, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	resp := orderdomain.ListOrderResponse{Orders: orders}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

// buildOrder resolves the customer and reference rows and snapshots their names.
func (s *Service) buildOrder(ctx context.Context, name string, req orderdomain.CreateOrderRequest) (*orderdomain.Order, error) {
	customerID, err := customerdomain.ParseID(req.CustomerID)
	if err != nil {
		return nil, orderdomain.ErrInvalidCustomer
	}
	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, orderdomain.ErrCustomerNotFound
	}

	recipeID, err := parseReferenceID(req.RecipeID)
	if err != nil || recipeID == 0 {
		return nil, orderdomain.ErrInvalidRecipe
	}
	recipe, err := s.referenceRepo.FindRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	quantity := req.Quantity.String()
	order := &orderdomain.Order{
		ID:            s.genID.Generate(),
		Name:          name,
		OrderedAt:     now,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		RecipeID:      recipe.ID,
		RecipeName:    recipe.Name,
		Pump:          strings.TrimSpace(req.Pump),
		PumpOperator:  strings.TrimSpace(req.PumpOperator),
		Quantity:      quantity,
		TotalQuantity: quantity,
		CreatedAt:     now,
	}

	siteID, err := parseReferenceID(req.SiteID)
	if err != nil {
		return nil, referencedomain.ErrSiteNotFound
	}
	if siteID != 0 {
		site, err := s.referenceRepo.FindSite(ctx, siteID)
		if err != nil {
			return nil, err
		}
		order.SiteID = &site.ID
		order.SiteName = site.Name
	}

	serviceTypeID, err := parseReferenceID(req.ServiceTypeID)
	if err != nil {
		return nil, referencedomain.ErrServiceTypeNotFound
	}
	if serviceTypeID != 0 {
		serviceType, err := s.referenceRepo.FindServiceType(ctx, serviceTypeID)
		if err != nil {
			return nil, err
		}
		order.ServiceTypeID = &serviceType.ID
		order.ServiceTypeName = serviceType.Name
	}

	return order, nil
}

func (s *Service) strictTransitions() bool {
	if s.opsConf == nil {
		return false
	}
	return s.opsConf.Get().Orders.StrictTransitions
}

// parseReferenceID returns 0 for an empty value.
func parseReferenceID(value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	id, err := snowflake.ParseString(value)
	if err != nil || id < 0 {
		return 0, errors.New("invalid reference id")
	}
	return id, nil
}
