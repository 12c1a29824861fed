package controllers

import (
	"net/http"
	"time"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type typeBreakdown struct {
	TypeName string `json:"typeName"`
	Count    int64  `json:"count"`
}

// GetDashboardStats aggregates the workshop overview: ticket counts per
// status, this month's revenue from finished repairs, the next deliveries
// and which repair types come up most.
func GetDashboardStats(c *gin.Context) {
	var statusCounts []statusCount
	if err := config.DB.Model(&models.Repair{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute status counts")
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var monthlyRevenue float64
	if err := config.DB.Model(&models.Repair{}).
		Where("status = ? AND updated_at >= ?", models.StatusFinished, monthStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&monthlyRevenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute monthly revenue")
		return
	}

	var upcoming []models.Repair
	if err := config.DB.
		Where("delivery_date >= ? AND status IN ?", utils.BeginningOfDay(now),
			[]string{models.StatusPending, models.StatusInProgress}).
		Order("delivery_date ASC").
		Limit(10).
		Find(&upcoming).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve upcoming deliveries")
		return
	}

	var breakdown []typeBreakdown
	if err := config.DB.Model(&models.RepairAnnotation{}).
		Select("type_name, COUNT(*) as count").
		Group("type_name").
		Order("count DESC").
		Scan(&breakdown).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute repair type breakdown")
		return
	}

	var customerCount int64
	if err := config.DB.Model(&models.Customer{}).Count(&customerCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCounts":       statusCounts,
		"monthlyRevenue":     monthlyRevenue,
		"upcomingDeliveries": upcoming,
		"typeBreakdown":      breakdown,
		"customerCount":      customerCount,
	})
}
