package controllers

import (
	"errors"
	"net/http"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateRepairTypeInput defines the expected JSON structure for creating a catalog entry
type CreateRepairTypeInput struct {
	Name           string  `json:"name" binding:"required"`
	Category       string  `json:"category" binding:"required,oneof=dings fins options"`
	Color          string  `json:"color" binding:"required"`
	PricePolyester float64 `json:"pricePolyester" binding:"min=0"`
	PriceEpoxy     float64 `json:"priceEpoxy" binding:"min=0"`
}

// UpdateRepairTypeInput defines the expected JSON structure for updating a catalog entry
type UpdateRepairTypeInput struct {
	Name           *string  `json:"name"`
	Category       *string  `json:"category" binding:"omitempty,oneof=dings fins options"`
	Color          *string  `json:"color"`
	PricePolyester *float64 `json:"pricePolyester" binding:"omitempty,min=0"`
	PriceEpoxy     *float64 `json:"priceEpoxy" binding:"omitempty,min=0"`
	IsActive       *bool    `json:"isActive"`
}

// CreateRepairType adds a catalog entry
func CreateRepairType(c *gin.Context) {
	var input CreateRepairTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	repairType := models.RepairType{
		Name:           input.Name,
		Category:       input.Category,
		Color:          input.Color,
		PricePolyester: input.PricePolyester,
		PriceEpoxy:     input.PriceEpoxy,
		IsActive:       true,
	}

	if err := config.DB.Create(&repairType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create repair type")
		return
	}

	c.JSON(http.StatusCreated, repairType)
}

// GetRepairTypes retrieves the catalog
func GetRepairTypes(c *gin.Context) {
	var repairTypes []models.RepairType
	if err := config.DB.Order("created_at DESC").Find(&repairTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve repair types")
		return
	}

	c.JSON(http.StatusOK, repairTypes)
}

// GetRepairType retrieves one catalog entry by ID
func GetRepairType(c *gin.Context) {
	typeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair type ID format")
		return
	}

	var repairType models.RepairType
	if err := config.DB.First(&repairType, "id = ?", typeUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, repairType)
}

// UpdateRepairType edits a catalog entry. Existing quotes are not
// affected: annotations snapshot prices at save time.
func UpdateRepairType(c *gin.Context) {
	typeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair type ID format")
		return
	}

	var input UpdateRepairTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var repairType models.RepairType
	if err := config.DB.First(&repairType, "id = ?", typeUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		repairType.Name = *input.Name
	}
	if input.Category != nil {
		repairType.Category = *input.Category
	}
	if input.Color != nil {
		repairType.Color = *input.Color
	}
	if input.PricePolyester != nil {
		repairType.PricePolyester = *input.PricePolyester
	}
	if input.PriceEpoxy != nil {
		repairType.PriceEpoxy = *input.PriceEpoxy
	}
	if input.IsActive != nil {
		repairType.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&repairType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update repair type")
		return
	}

	c.JSON(http.StatusOK, repairType)
}

// DeleteRepairType removes a catalog entry
func DeleteRepairType(c *gin.Context) {
	typeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair type ID format")
		return
	}

	result := config.DB.Delete(&models.RepairType{}, "id = ?", typeUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete repair type")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Repair type not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair type deleted successfully"})
}
