package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rifasolidaria/rifa/internal/campaign"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
	"github.com/rifasolidaria/rifa/internal/config"
	"github.com/rifasolidaria/rifa/internal/donation"
	donationdomain "github.com/rifasolidaria/rifa/internal/donation/domain"
	"github.com/rifasolidaria/rifa/internal/observability"
	obsmiddleware "github.com/rifasolidaria/rifa/internal/observability/logger"
	obsmetrics "github.com/rifasolidaria/rifa/internal/observability/metrics"
	obstracing "github.com/rifasolidaria/rifa/internal/observability/tracing"
	"github.com/rifasolidaria/rifa/internal/pix"
	"github.com/rifasolidaria/rifa/internal/raffle"
	raffledomain "github.com/rifasolidaria/rifa/internal/raffle/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	campaign.Module,
	donation.Module,
	raffle.Module,
	pix.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
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
	engine      *gin.Engine
	cfg         config.Config
	campaignSvc campaigndomain.Service
	donationSvc donationdomain.Service
	raffleSvc   raffledomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	CampaignSvc campaigndomain.Service
	DonationSvc donationdomain.Service
	RaffleSvc   raffledomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		campaignSvc: p.CampaignSvc,
		donationSvc: p.DonationSvc,
		raffleSvc:   p.RaffleSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Campaigns --------
	api.GET("/campaigns", s.ListCampaigns)
	api.GET("/campaigns/:id", s.GetCampaignByID)
	api.GET("/campaigns/:id/stats", s.GetCampaignStats)

	// -------- Donations --------
	api.POST("/donations", s.CreateDonation)
	api.GET("/donations/:id", s.GetDonationByID)
	api.PATCH("/donations/:id/status", s.UpdateDonationStatus)

	// -------- Raffle numbers --------
	api.GET("/raffle-numbers/:donationId", s.ListRaffleNumbersByDonation)
}
