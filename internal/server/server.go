package server

import (
	"context"
	"net/http"
	"time"

	"github.com/brightsales/atlas/internal/activity"
	activitydomain "github.com/brightsales/atlas/internal/activity/domain"
	"github.com/brightsales/atlas/internal/ai"
	aidomain "github.com/brightsales/atlas/internal/ai/domain"
	"github.com/brightsales/atlas/internal/auth"
	authdomain "github.com/brightsales/atlas/internal/auth/domain"
	"github.com/brightsales/atlas/internal/company"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/internal/config"
	"github.com/brightsales/atlas/internal/contact"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	"github.com/brightsales/atlas/internal/observability"
	obsmiddleware "github.com/brightsales/atlas/internal/observability/logger"
	obsmetrics "github.com/brightsales/atlas/internal/observability/metrics"
	obstracing "github.com/brightsales/atlas/internal/observability/tracing"
	"github.com/brightsales/atlas/internal/opportunity"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	company.Module,
	contact.Module,
	opportunity.Module,
	activity.Module,
	ai.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
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

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
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
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	authSvc        authdomain.Service
	companySvc     companydomain.Service
	contactSvc     contactdomain.Service
	opportunitySvc opportunitydomain.Service
	activitySvc    activitydomain.Service
	aiSvc          aidomain.Service

	companyRepo     companydomain.Repository
	contactRepo     contactdomain.Repository
	opportunityRepo opportunitydomain.Repository
	activityRepo    activitydomain.Repository
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	AuthSvc        authdomain.Service
	CompanySvc     companydomain.Service
	ContactSvc     contactdomain.Service
	OpportunitySvc opportunitydomain.Service
	ActivitySvc    activitydomain.Service
	AISvc          aidomain.Service

	CompanyRepo     companydomain.Repository
	ContactRepo     contactdomain.Repository
	OpportunityRepo opportunitydomain.Repository
	ActivityRepo    activitydomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		authSvc:         p.AuthSvc,
		companySvc:      p.CompanySvc,
		contactSvc:      p.ContactSvc,
		opportunitySvc:  p.OpportunitySvc,
		activitySvc:     p.ActivitySvc,
		aiSvc:           p.AISvc,
		companyRepo:     p.CompanyRepo,
		contactRepo:     p.ContactRepo,
		opportunityRepo: p.OpportunityRepo,
		activityRepo:    p.ActivityRepo,
	}

	svc.registerAPIRoutes()
	svc.registerUIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/auth/login", s.Login)

	api.Use(s.AuthRequired())

	companies := api.Group("/companies")
	companies.GET("", s.ListCompanies)
	companies.POST("", s.CreateCompany)
	companies.POST("/bulk-delete", s.BulkDeleteCompanies)
	companies.PUT("/bulk-update", s.BulkUpdateCompanies)
	companies.GET("/:id", s.GetCompanyByID)
	companies.PUT("/:id", s.UpdateCompany)
	companies.DELETE("/:id", s.DeleteCompany)

	contacts := api.Group("/contacts")
	contacts.GET("", s.ListContacts)
	contacts.POST("", s.CreateContact)
	contacts.POST("/bulk-delete", s.BulkDeleteContacts)
	contacts.PATCH("/bulk-update", s.BulkUpdateContacts)
	contacts.GET("/:id", s.GetContactByID)
	contacts.PATCH("/:id", s.UpdateContact)
	contacts.DELETE("/:id", s.DeleteContact)

	opportunities := api.Group("/opportunities")
	opportunities.GET("", s.ListOpportunities)
	opportunities.POST("", s.CreateOpportunity)
	opportunities.POST("/bulk-delete", s.BulkDeleteOpportunities)
	opportunities.PATCH("/bulk-update", s.BulkUpdateOpportunities)
	opportunities.GET("/:id", s.GetOpportunityByID)
	opportunities.PATCH("/:id", s.UpdateOpportunity)
	opportunities.DELETE("/:id", s.DeleteOpportunity)

	activities := api.Group("/activities")
	activities.GET("", s.ListActivities)
	activities.POST("", s.CreateActivity)
	activities.POST("/bulk-delete", s.BulkDeleteActivities)
	activities.PATCH("/bulk-update", s.BulkUpdateActivities)
	activities.GET("/:id", s.GetActivityByID)
	activities.PATCH("/:id", s.UpdateActivity)
	activities.DELETE("/:id", s.DeleteActivity)

	api.POST("/ai/search", s.AISearch)
	api.POST("/ai/complete", s.AIComplete)
	api.POST("/ai/embed", s.AIEmbed)

	api.GET("/dashboard/stats", s.GetDashboardStats)
}
