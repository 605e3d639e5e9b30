package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/plantdesk/internal/config"
	"github.com/smallbiznis/plantdesk/internal/customer"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	"github.com/smallbiznis/plantdesk/internal/export"
	"github.com/smallbiznis/plantdesk/internal/ledger"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	"github.com/smallbiznis/plantdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/plantdesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/plantdesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/plantdesk/internal/observability/tracing"
	"github.com/smallbiznis/plantdesk/internal/order"
	orderdomain "github.com/smallbiznis/plantdesk/internal/order/domain"
	"github.com/smallbiznis/plantdesk/internal/production"
	productiondomain "github.com/smallbiznis/plantdesk/internal/production/domain"
	"github.com/smallbiznis/plantdesk/internal/providers"
	"github.com/smallbiznis/plantdesk/internal/reference"
	referencedomain "github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/smallbiznis/plantdesk/internal/report"
	reportdomain "github.com/smallbiznis/plantdesk/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	reference.Module,
	customer.Module,
	ledger.Module,
	production.Module,
	order.Module,
	report.Module,
	providers.Module,
	export.Module,
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func corsConfig(cfg config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	corsCfg.ExposeHeaders = []string{"Content-Disposition", "X-Request-Id"}
	if len(cfg.CORSAllowedOrigins) == 0 {
		if cfg.IsProduction() {
			corsCfg.AllowOriginFunc = func(string) bool { return false }
		} else {
			corsCfg.AllowAllOrigins = true
		}
		return corsCfg
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	return corsCfg
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, s *Server) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	customerSvc   customerdomain.Service
	ledgerSvc     ledgerdomain.Service
	orderSvc      orderdomain.Service
	productionSvc productiondomain.Service
	reportSvc     reportdomain.Service
	refrepo       referencedomain.Repository
	exporter      *export.Exporter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	CustomerSvc   customerdomain.Service
	LedgerSvc     ledgerdomain.Service
	OrderSvc      orderdomain.Service
	ProductionSvc productiondomain.Service
	ReportSvc     reportdomain.Service
	Refrepo       referencedomain.Repository
	Exporter      *export.Exporter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		customerSvc:   p.CustomerSvc,
		ledgerSvc:     p.LedgerSvc,
		orderSvc:      p.OrderSvc,
		productionSvc: p.ProductionSvc,
		reportSvc:     p.ReportSvc,
		refrepo:       p.Refrepo,
		exporter:      p.Exporter,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Reference --------
	api.GET("/recipes", s.ListRecipes)
	api.GET("/service-types", s.ListServiceTypes)
	api.GET("/sites", s.ListSites)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.GET("/customers/:id/activity", s.GetCustomerActivity)

	// -------- Ledger --------
	api.GET("/customers/:id/ledger", s.ListLedgerEntries)
	api.POST("/customers/:id/ledger", s.RecordLedgerEntry)
	api.GET("/customers/:id/balance", s.GetCustomerBalance)
	api.GET("/customers/:id/statement", s.CustomerStatementReport)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderByID)
	api.POST("/orders/:id/status", s.TransitionOrderStatus)
	api.PATCH("/orders/:id/quantity", s.UpdateOrderQuantity)

	// -------- Production --------
	api.GET("/production/plans", s.ListProductionPlans)
	api.GET("/production/recipes", s.ListRecipeSummary)

	// -------- Reports --------
	reports := api.Group("/reports")
	{
		reports.GET("/customers", s.CustomerDirectoryReport)
		reports.GET("/balances", s.BalanceReport)
		reports.GET("/production", s.ProductionReport)
		reports.GET("/orders", s.OrderBoardReport)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
