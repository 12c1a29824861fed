package routes

import (
	"os"
	"strings"

	"surfrepair-backend/config"
	"surfrepair-backend/controllers"
	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/check-email", controllers.CheckEmail)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Unauthenticated status lookup for customers holding a ticket number
	public := r.Group("/public")
	{
		public.GET("/repairs/:id", controllers.GetPublicRepair)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		staff := api.Group("")
		staff.Use(utils.RequireRoles(models.RoleStaff, models.RoleSuperAdmin))
		{
			// Customer routes
			customers := staff.Group("/customers")
			{
				customers.POST("", controllers.CreateCustomer)
				customers.GET("", controllers.GetCustomers)
				customers.GET("/export", controllers.ExportCustomersCSV)
				customers.GET("/:id", controllers.GetCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
				customers.DELETE("/:id", controllers.DeleteCustomer)
			}

			// Repair type catalog routes
			repairTypes := staff.Group("/repair-types")
			{
				repairTypes.POST("", controllers.CreateRepairType)
				repairTypes.GET("", controllers.GetRepairTypes)
				repairTypes.GET("/:id", controllers.GetRepairType)
				repairTypes.PUT("/:id", controllers.UpdateRepairType)
				repairTypes.DELETE("/:id", controllers.DeleteRepairType)
			}

			// Repair routes
			repairs := staff.Group("/repairs")
			{
				repairs.POST("", controllers.CreateRepair)
				repairs.GET("", controllers.GetRepairs)
				repairs.GET("/calendar", controllers.GetRepairCalendar)
				repairs.POST("/annotations/position", controllers.PlaceAnnotation)
				repairs.GET("/:id", controllers.GetRepair)
				repairs.PUT("/:id", controllers.UpdateRepair)
				repairs.DELETE("/:id", controllers.DeleteRepair)
				repairs.PATCH("/:id/status", controllers.UpdateRepairStatus)
				repairs.PATCH("/:id/delivery-date", controllers.UpdateRepairDeliveryDate)
			}

			// Dashboard routes
			staff.GET("/dashboard", controllers.GetDashboardStats)
		}

		// Access management, super admin only
		admin := api.Group("/admin")
		admin.Use(utils.RequireRoles(models.RoleSuperAdmin))
		{
			admin.GET("/profiles", controllers.GetAccounts)
			admin.PUT("/profiles/:id/role", controllers.UpdateAccountRole)
			admin.PUT("/profiles/:id/validate", controllers.ValidateAccount)
			admin.DELETE("/profiles/:id", controllers.DeleteAdminProfile)
		}

		// Customer self-service
		me := api.Group("/me")
		{
			me.GET("/profile", controllers.GetMyProfile)
			me.PUT("/profile", controllers.UpdateMyProfile)
			me.GET("/repairs", controllers.GetMyRepairs)
		}
	}

	return r
}
