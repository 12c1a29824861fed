package main

import (
	"fmt"
	"os"

	"surfrepair-backend/config"
	"surfrepair-backend/controllers"
	"surfrepair-backend/models"
	"surfrepair-backend/routes"
	"surfrepair-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.Customer{},
		&models.Surfboard{},
		&models.RepairType{},
		&models.Repair{},
		&models.RepairAnnotation{},
	)

	seedRepairTypes()
}

// seedRepairTypes installs the default catalog on an empty database
func seedRepairTypes() {
	var count int64
	if err := config.DB.Model(&models.RepairType{}).Count(&count).Error; err != nil {
		logrus.WithError(err).Warn("could not check repair type catalog")
		return
	}
	if count > 0 {
		return
	}

	defaults := models.DefaultRepairTypes()
	if err := config.DB.Create(&defaults).Error; err != nil {
		logrus.WithError(err).Warn("could not seed default repair types")
		return
	}
	logrus.WithField("count", len(defaults)).Info("seeded default repair types")
}

func main() {
	log := logrus.StandardLogger()
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	notifier := services.NewNotifier(log)
	controllers.Setup(notifier, log)

	reminders := services.NewReminderService(config.DB, notifier, log)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
