package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-appointment-server/internal/config"
	"clinic-appointment-server/internal/handlers"
	"clinic-appointment-server/internal/middleware"
	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/scheduling"
	"clinic-appointment-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	gormStore := store.NewGormStore(db)
	svc := scheduling.NewService(gormStore, gormStore, gormStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	shiftHandler := handlers.NewShiftHandler(svc)
	appointmentHandler := handlers.NewAppointmentHandler(svc)
	messageHandler := handlers.NewMessageHandler(db)

	patientAuth := middleware.RequireRole(cfg, models.RolePatient)
	doctorAuth := middleware.RequireRole(cfg, models.RoleDoctor)
	adminAuth := middleware.RequireRole(cfg, models.RoleAdmin)

	api := router.Group("/api/v1")

	// User and session routes
	users := api.Group("/users")
	{
		users.POST("/patient/register", authHandler.RegisterPatient)
		users.POST("/login", authHandler.Login)
		users.GET("/doctors", userHandler.GetDoctors)

		users.POST("/doctor/addnew", adminAuth, userHandler.AddDoctor)
		users.POST("/admin/addnew", adminAuth, userHandler.AddAdmin)

		users.GET("/patient/me", patientAuth, authHandler.GetProfile)
		users.GET("/doctor/me", doctorAuth, authHandler.GetProfile)
		users.GET("/admin/me", adminAuth, authHandler.GetProfile)

		users.GET("/patient/logout", patientAuth, authHandler.Logout(models.RolePatient))
		users.GET("/doctor/logout", doctorAuth, authHandler.Logout(models.RoleDoctor))
		users.GET("/admin/logout", adminAuth, authHandler.Logout(models.RoleAdmin))
	}

	// Shift and appointment booking routes
	appointments := api.Group("/appointments")
	{
		appointments.GET("/departments", shiftHandler.GetDepartments)
		appointments.GET("/shifts/available", shiftHandler.GetAvailableShifts)

		// Doctor shift management
		appointments.POST("/shifts", doctorAuth, shiftHandler.CreateShift)
		appointments.GET("/shifts/doctor", doctorAuth, shiftHandler.GetDoctorShifts)
		appointments.PUT("/shifts/:id", doctorAuth, shiftHandler.UpdateShift)
		appointments.DELETE("/shifts/:id", doctorAuth, shiftHandler.DeleteShift)

		// Patient booking lifecycle
		appointments.POST("/book", patientAuth, appointmentHandler.BookAppointment)
		appointments.GET("/patient", patientAuth, appointmentHandler.GetPatientAppointments)
		appointments.PUT("/cancel/:id", patientAuth, appointmentHandler.CancelAppointment)
		appointments.PUT("/reschedule/:id", patientAuth, appointmentHandler.RescheduleAppointment)

		// Doctor appointment management
		appointments.GET("/all", doctorAuth, appointmentHandler.GetDoctorAppointments)
		appointments.PUT("/status/:id", doctorAuth, appointmentHandler.UpdateAppointmentStatus)
		appointments.DELETE("/:id", doctorAuth, appointmentHandler.DeleteAppointment)
	}

	// Contact messages
	messages := api.Group("/messages")
	{
		messages.POST("/send", messageHandler.SendMessage)
		messages.GET("/all", adminAuth, messageHandler.GetAllMessages)
		messages.DELETE("/:id", adminAuth, messageHandler.DeleteMessage)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
