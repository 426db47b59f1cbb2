package handler

import (
	"choosecare-bff/internal/config"
	"choosecare-bff/internal/middleware"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/service"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Services bundles what the routes dispatch to.
type Services struct {
	Auth         *service.AuthService
	Directory    *service.DirectoryService
	Admin        *service.AdminService
	Appointments *service.AppointmentService
}

// NewRouter builds the gin engine with every route of the app.
func NewRouter(cfg *config.Config, svc Services, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Device())
	r.Use(middleware.RequestLogger(logger))

	authHandler := NewAuthHandler(svc.Auth)
	directoryHandler := NewDirectoryHandler(svc.Directory)
	appointmentHandler := NewAppointmentHandler(svc.Appointments)
	adminHandler := NewAdminHandler(svc.Admin)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "choosecare-bff",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Patient browsing (public, token forwarded when present)
	r.GET("/hospitals", directoryHandler.GetHospitals)
	r.GET("/hospitals/:id", directoryHandler.GetHospital)
	r.GET("/hospitals/:id/departments", directoryHandler.GetDepartments)
	r.GET("/departments/:id/doctors", directoryHandler.GetDoctors)
	r.POST("/doctors/:id/actions", middleware.OptionalAuth(), appointmentHandler.DoctorAction)

	// Authenticated routes
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(svc.Auth))
	{
		authed.GET("/patients/:id", appointmentHandler.GetPatient)
		authed.GET("/appointments",
			middleware.RequireRole(models.RoleReceptionist, models.RoleHospitalAdmin, models.RoleAdmin, models.RoleSuperAdmin),
			appointmentHandler.GetAppointments)
	}

	// Admin screens
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(svc.Auth))
	admin.Use(middleware.RequireDevice())
	admin.Use(middleware.RequireRole(models.RoleHospitalAdmin, models.RoleAdmin, models.RoleSuperAdmin))
	{
		admin.GET("/screens/:screen", adminHandler.GetScreen)
		admin.POST("/screens/:screen/open", adminHandler.OpenForm)
		admin.POST("/screens/:screen/close", adminHandler.CloseForm)

		admin.GET("/hospitals", adminHandler.GetHospitals)
		admin.GET("/hospitals/:id/departments", adminHandler.GetDepartments)
		admin.GET("/departments/:id/doctors", adminHandler.GetDoctors)

		admin.POST("/departments", adminHandler.CreateDepartment)
		admin.PUT("/departments/:id", adminHandler.UpdateDepartment)
		admin.DELETE("/departments/:id", adminHandler.DeleteDepartment)

		admin.POST("/doctors", adminHandler.CreateDoctor)
		admin.PUT("/doctors/:id", adminHandler.UpdateDoctor)
		admin.DELETE("/doctors/:id", adminHandler.DeleteDoctor)

		admin.POST("/staff/signup", adminHandler.SignupStaff)

		// Hospital CRUD is super admin only
		superAdmin := admin.Group("/hospitals")
		superAdmin.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			superAdmin.POST("", adminHandler.CreateHospital)
			superAdmin.PUT("/:id", adminHandler.UpdateHospital)
			superAdmin.DELETE("/:id", adminHandler.DeleteHospital)
		}
	}

	return r
}
