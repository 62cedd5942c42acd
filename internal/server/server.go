package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/gstbooks/internal/config"
	"github.com/smallbiznis/gstbooks/internal/customer"
	customerdomain "github.com/smallbiznis/gstbooks/internal/customer/domain"
	"github.com/smallbiznis/gstbooks/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/gstbooks/internal/dashboard/domain"
	"github.com/smallbiznis/gstbooks/internal/export/excel"
	"github.com/smallbiznis/gstbooks/internal/export/pdf"
	"github.com/smallbiznis/gstbooks/internal/item"
	itemdomain "github.com/smallbiznis/gstbooks/internal/item/domain"
	"github.com/smallbiznis/gstbooks/internal/logger"
	"github.com/smallbiznis/gstbooks/internal/providers/email"
	"github.com/smallbiznis/gstbooks/internal/purchase"
	purchasedomain "github.com/smallbiznis/gstbooks/internal/purchase/domain"
	"github.com/smallbiznis/gstbooks/internal/sale"
	saledomain "github.com/smallbiznis/gstbooks/internal/sale/domain"
	"github.com/smallbiznis/gstbooks/internal/taxpaid"
	taxpaiddomain "github.com/smallbiznis/gstbooks/internal/taxpaid/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	customer.Module,
	item.Module,
	sale.Module,
	purchase.Module,
	taxpaid.Module,
	dashboard.Module,
	pdf.Module,
	excel.Module,
	email.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
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
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB

	customerSvc  customerdomain.Service
	itemSvc      itemdomain.Service
	saleSvc      saledomain.Service
	purchaseSvc  purchasedomain.Service
	taxPaidSvc   taxpaiddomain.Service
	dashboardSvc dashboarddomain.Service

	pdfProvider   pdf.Provider
	excelExporter *excel.Exporter
	emailProvider email.Provider
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config
	DB  *gorm.DB

	CustomerSvc  customerdomain.Service
	ItemSvc      itemdomain.Service
	SaleSvc      saledomain.Service
	PurchaseSvc  purchasedomain.Service
	TaxPaidSvc   taxpaiddomain.Service
	DashboardSvc dashboarddomain.Service

	PDFProvider   pdf.Provider
	ExcelExporter *excel.Exporter
	EmailProvider email.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		customerSvc:   p.CustomerSvc,
		itemSvc:       p.ItemSvc,
		saleSvc:       p.SaleSvc,
		purchaseSvc:   p.PurchaseSvc,
		taxPaidSvc:    p.TaxPaidSvc,
		dashboardSvc:  p.DashboardSvc,
		pdfProvider:   p.PDFProvider,
		excelExporter: p.ExcelExporter,
		emailProvider: p.EmailProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1", OrgScopeMiddleware(s.cfg))

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers", s.ListCustomers)
	v1.GET("/customers/:id", s.GetCustomer)
	v1.PUT("/customers/:id", s.UpdateCustomer)
	v1.DELETE("/customers/:id", s.DeleteCustomer)

	v1.POST("/items", s.CreateItem)
	v1.GET("/items", s.ListItems)
	v1.GET("/items/:id", s.GetItem)
	v1.PUT("/items/:id", s.UpdateItem)
	v1.DELETE("/items/:id", s.DeleteItem)

	v1.POST("/sales", s.CreateSale)
	v1.GET("/sales", s.ListSales)
	v1.GET("/sales/:id", s.GetSale)
	v1.PUT("/sales/:id", s.UpdateSale)
	v1.DELETE("/sales/:id", s.DeleteSale)
	v1.POST("/sales/:id/mark-paid", s.MarkSalePaid)
	v1.GET("/sales/:id/pdf", s.DownloadSalePDF)
	v1.POST("/sales/:id/email", s.EmailSale)

	v1.POST("/purchases", s.CreatePurchase)
	v1.GET("/purchases", s.ListPurchases)
	v1.GET("/purchases/:id", s.GetPurchase)
	v1.PUT("/purchases/:id", s.UpdatePurchase)
	v1.DELETE("/purchases/:id", s.DeletePurchase)

	v1.POST("/taxpaid", s.CreateTaxPayment)
	v1.GET("/taxpaid", s.ListTaxPayments)
	v1.GET("/taxpaid/:id", s.GetTaxPayment)
	v1.PUT("/taxpaid/:id", s.UpdateTaxPayment)
	v1.DELETE("/taxpaid/:id", s.DeleteTaxPayment)

	v1.GET("/dashboard/summary", s.DashboardSummary)
	v1.GET("/dashboard/monthly", s.DashboardMonthly)

	v1.GET("/exports/sales.xlsx", s.ExportSalesRegister)
	v1.GET("/exports/purchases.xlsx", s.ExportPurchaseRegister)
}
