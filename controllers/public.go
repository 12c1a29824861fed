package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicRepairView is the unauthenticated status page payload. It
// deliberately omits customer identity and staff details.
type PublicRepairView struct {
	RepairNumber int                 `json:"repairNumber"`
	Status       string              `json:"status"`
	BoardModel   string              `json:"boardModel"`
	DeliveryDate time.Time           `json:"deliveryDate"`
	Repairs      []PublicRepairEntry `json:"repairs"`
	Subtotal     float64             `json:"subtotal"`
	Discount     float64             `json:"discount"`
	Total        float64             `json:"total"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// PublicRepairEntry summarizes one annotation on the status page.
type PublicRepairEntry struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Side     string `json:"side"`
	Location string `json:"location"`
}

// GetPublicRepair looks up a repair by its 5-digit ticket number or by
// its ID, for the customer-facing status page.
func GetPublicRepair(c *gin.Context) {
	param := c.Param("id")

	var repair models.Repair
	var err error
	if number, convErr := strconv.Atoi(param); convErr == nil {
		err = config.DB.Preload("Annotations").First(&repair, "repair_number = ?", number).Error
	} else if repairUUID, parseErr := uuid.Parse(param); parseErr == nil {
		err = config.DB.Preload("Annotations").First(&repair, "id = ?", repairUUID).Error
	} else {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair reference")
		return
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	entries := make([]PublicRepairEntry, 0, len(repair.Annotations))
	for _, a := range repair.Annotations {
		entries = append(entries, PublicRepairEntry{
			Type:     a.TypeName,
			Quantity: a.Quantity,
			Side:     a.Side,
			Location: a.Location,
		})
	}

	c.JSON(http.StatusOK, PublicRepairView{
		RepairNumber: repair.RepairNumber,
		Status:       repair.Status,
		BoardModel:   repair.BoardModel,
		DeliveryDate: repair.DeliveryDate,
		Repairs:      entries,
		Subtotal:     repair.Subtotal,
		Discount:     repair.DiscountAmount,
		Total:        repair.Total,
		UpdatedAt:    repair.UpdatedAt,
	})
}
