package api

import (
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/payment"
	"github.com/Domenick1991/flightbooking/internal/service/stats"
	"github.com/Domenick1991/flightbooking/internal/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Services struct {
	Auth     auth.AuthUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Payments payment.PaymentUseCase
	Stats    stats.StatsUseCase
	DB       Pinger
}

type RouterConfig struct {
	CORSOrigins []string
	Metrics     *metrics.Metrics
	Logger      logger.Logger
}

func NewRouter(svc Services, cfg RouterConfig) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = validation.Register(v)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(Metrics(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	NewHealthHandler(svc.DB).Register(router)
	RegisterDocs(router)

	requireAuth := RequireAuth(svc.Auth)
	apiGroup := router.Group("/api")

	NewAuthHandler(svc.Auth).Register(apiGroup.Group("/auth"))

	flightHandler := NewFlightHandler(svc.Flights)
	flightHandler.Register(apiGroup.Group("/flights"))
	flightHandler.RegisterAirports(apiGroup.Group("/airports"))

	NewBookingHandler(svc.Bookings, svc.Stats).Register(apiGroup.Group("/bookings", requireAuth))
	NewPaymentHandler(svc.Payments).Register(apiGroup.Group("/payments", requireAuth))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
