package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ezahpizza/travel-agent-backend/internal/config"
	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
	hoteldomain "github.com/ezahpizza/travel-agent-backend/internal/hotel/domain"
	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/observability"
	obsmiddleware "github.com/ezahpizza/travel-agent-backend/internal/observability/logger"
	obsmetrics "github.com/ezahpizza/travel-agent-backend/internal/observability/metrics"
	obstracing "github.com/ezahpizza/travel-agent-backend/internal/observability/tracing"
	"github.com/ezahpizza/travel-agent-backend/internal/ratelimit"
	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	usagedomain "github.com/ezahpizza/travel-agent-backend/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(CORSMiddleware(cfg.CORSOrigins))
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
					log.Fatal("http server failed", zap.Error(err))
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
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	flightSvc       flightdomain.Service
	hotelSvc        hoteldomain.Service
	researchSvc     researchdomain.Service
	itinerarySvc    itinerarydomain.Service
	usageSvc        usagedomain.Service
	subscriptionSvc subscriptiondomain.Service
	searchLimiter   *ratelimit.SearchLimiter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	FlightSvc       flightdomain.Service
	HotelSvc        hoteldomain.Service
	ResearchSvc     researchdomain.Service
	ItinerarySvc    itinerarydomain.Service
	UsageSvc        usagedomain.Service
	SubscriptionSvc subscriptiondomain.Service
	SearchLimiter   *ratelimit.SearchLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		flightSvc:       p.FlightSvc,
		hotelSvc:        p.HotelSvc,
		researchSvc:     p.ResearchSvc,
		itinerarySvc:    p.ItinerarySvc,
		usageSvc:        p.UsageSvc,
		subscriptionSvc: p.SubscriptionSvc,
		searchLimiter:   p.SearchLimiter,
	}

	s.registerFlightRoutes()
	s.registerHotelRoutes()
	s.registerResearchRoutes()
	s.registerItineraryRoutes()
	s.registerSubscriptionRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerFlightRoutes() {
	flights := s.engine.Group("/flights")

	flights.POST("/search", s.SearchFlights)
	flights.GET("/search/history", s.FlightSearchHistory)
}

func (s *Server) registerHotelRoutes() {
	hotels := s.engine.Group("/hotels-restaurants")

	hotels.POST("/search", s.SearchHotelsRestaurants)
	hotels.GET("/destination/:destination/history", s.HotelSearchHistory)
}

func (s *Server) registerResearchRoutes() {
	research := s.engine.Group("/research")

	research.POST("/destination", s.ResearchDestination)
	research.GET("/destination/:destination/history", s.ResearchHistory)
}

func (s *Server) registerItineraryRoutes() {
	itinerary := s.engine.Group("/itinerary")

	itinerary.POST("/generate", s.GenerateItinerary)
	itinerary.GET("/history", s.ItineraryHistory)
	itinerary.GET("/preferences", s.ItinerariesByPreferences)
	itinerary.GET("/stats", s.ItineraryStats)
	itinerary.GET("/:id", s.GetItinerary)
	itinerary.PUT("/:id", s.UpdateItinerary)
	itinerary.DELETE("/:id", s.DeleteItinerary)
}

func (s *Server) registerSubscriptionRoutes() {
	subscription := s.engine.Group("/subscription")

	subscription.POST("/create-session", s.CreateCheckoutSession)
	subscription.POST("/verify-payment", s.VerifyPayment)
	subscription.GET("/status", s.SubscriptionStatus)
}
