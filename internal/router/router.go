package router

import (
	"context"
	"log"
	"net/http"
	"time"

	"stadiumbooking/internal/cache"
	"stadiumbooking/internal/middleware"
	"stadiumbooking/internal/modules/admin"
	"stadiumbooking/internal/modules/auth"
	"stadiumbooking/internal/modules/booking"
	"stadiumbooking/internal/modules/catalog"
	"stadiumbooking/internal/modules/payment"
	jwtsvc "stadiumbooking/internal/pkg/jwt"
	"stadiumbooking/internal/pkg/response"
	"stadiumbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	JWT         *jwtsvc.Service
	SearchCache cache.SearchCache
	CORSOrigins []string
	// AccessLog enables gin's request logger.
	AccessLog bool
}

// New wires repositories, services and handlers into a gin engine serving
// /api/v1 and /health.
func New(d Deps) *gin.Engine {
	userRepo := repository.NewUserRepository(d.DB)
	stadiumRepo := repository.NewStadiumRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	paymentRepo := repository.NewPaymentRepository(d.DB)
	statsRepo := repository.NewStatsRepository(d.DB)

	searchCache := d.SearchCache
	if searchCache == nil {
		searchCache = cache.NoopSearchCache{}
	}

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.JWT))
	catalogHandler := catalog.NewHandler(catalog.NewService(stadiumRepo, bookingRepo, searchCache, log.Printf))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, stadiumRepo, searchCache, log.Printf))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, stadiumRepo, log.Printf), log.Printf)
	adminHandler := admin.NewHandler(admin.NewService(userRepo, statsRepo, log.Printf))

	r := gin.New()
	if d.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS(d.CORSOrigins))

	r.GET("/health", health(d.DB))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.JWT, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Internal(c, err, "database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
