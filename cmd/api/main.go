package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"golfclub/internal/config"
	"golfclub/internal/database"
	"golfclub/internal/middleware"
	"golfclub/internal/modules/booking"
	"golfclub/internal/modules/course"
	"golfclub/internal/modules/loyalty"
	"golfclub/internal/modules/notification"
	"golfclub/internal/modules/pricing"
	jwtsvc "golfclub/internal/pkg/jwt"
	"golfclub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	rateRepo := repository.NewRateRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	notifService := notification.NewService(db)
	loyaltyService := loyalty.NewService(db)
	pricingService := pricing.NewService(rateRepo, cfg.Policy)

	bookingService := booking.NewService(
		bookingRepo,
		resourceRepo,
		pricingService,
		loyaltyService,
		notifService,
		cfg.Policy,
	)
	bookingHandler := booking.NewHandler(bookingService)

	courseService := course.NewService(courseRepo, bookingRepo, notifService, cfg.Policy)
	courseHandler := course.NewHandler(courseService)

	loyaltyHandler := loyalty.NewHandler(loyaltyService)
	notifHandler := notification.NewHandler(notifService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		bookingHandler.RegisterPublicRoutes(v1)
		courseHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			courseHandler.RegisterRoutes(protected)
			loyaltyHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)

			// lifecycle transitions are driven by payment callbacks and
			// back office staff
			operator := protected.Group("/")
			operator.Use(middleware.RequireRole("admin", "payments"))
			bookingHandler.RegisterOperatorRoutes(operator)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			loyaltyHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
