package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/cron"
	"clinicbook/database"
	appointmentRepoPkg "clinicbook/database/repository/appointment"
	doctorRepoPkg "clinicbook/database/repository/doctor"
	userRepoPkg "clinicbook/database/repository/user"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/admin"
	"clinicbook/services/booking"
	"clinicbook/services/doctor"
	"clinicbook/services/tasks"
	"clinicbook/services/user"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// reminder queue.
	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer reminderClient.Close()
	cron.StartReminderWorker(appointmentRepo)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	doctorService := &doctor.DefaultDoctorService{
		Repo:  doctorRepo,
		Cache: utils.GetCacheClient(),
	}
	bookingService := &booking.DefaultBookingService{
		ApptRepo:   appointmentRepo,
		DoctorRepo: doctorRepo,
		Payments:   &booking.StripeGateway{},
		Reminders:  &tasks.AsynqReminderScheduler{Client: reminderClient},
	}
	adminService := &admin.DefaultAdminService{
		Users:     userRepo,
		Doctors:   doctorRepo,
		Directory: doctorService,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService),
		Doctor:  handlers.NewDoctorHandler(doctorService),
		Booking: handlers.NewBookingHandler(bookingService),
		Admin:   handlers.NewAdminHandler(adminService, storageService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
