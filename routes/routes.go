package routes

import (
	"net/http"
	"time"

	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Auth    *handlers.AuthHandler
	Doctor  *handlers.DoctorHandler
	Booking *handlers.BookingHandler
	Admin   *handlers.AdminHandler
}

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/signup", hb.Auth.SignupHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/profile/:id", hb.Auth.GetProfileHandler)
		api.PATCH("/profile/:id", hb.Auth.UpdateProfileHandler)
		api.POST("/change-password", hb.Auth.ChangePasswordHandler)
	}
}

// RegisterDoctorRoutes registers the public directory and slot management.
func RegisterDoctorRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/doctors")
	{
		api.GET("", hb.Doctor.ListDoctorsHandler)
		api.GET("/:id", hb.Doctor.GetDoctorHandler)

		api.PUT("/update-slots",
			middleware.JWTAuthMiddleware(),
			middleware.RequireRoles(models.RoleDoctor),
			hb.Doctor.UpdateSlotsHandler)
	}
}

// RegisterAppointmentRoutes registers the booking lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/book", middleware.RequireRoles(models.RoleUser), hb.Booking.BookHandler)
		api.POST("/payment/create-intent", middleware.RequireRoles(models.RoleUser), hb.Booking.CreatePaymentIntentHandler)
		api.POST("/payment/confirm", middleware.RequireRoles(models.RoleUser), hb.Booking.ConfirmPaymentHandler)
		api.GET("/my-appointments", middleware.RequireRoles(models.RoleUser, models.RoleDoctor), hb.Booking.MyAppointmentsHandler)
		api.PATCH("/:id/status", middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin), hb.Booking.ChangeStatusHandler)
	}
}

// RegisterAdminRoutes registers doctor onboarding/removal and listings.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
		api.POST("/add-doctor", hb.Admin.AddDoctorHandler)
		api.DELETE("/doctors/:id", hb.Admin.RemoveDoctorHandler)
		api.GET("/users", hb.Admin.ListUsersHandler)
		api.GET("/doctors", hb.Admin.ListDoctorsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
