package controllers

import (
	"errors"
	"net/http"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentCustomer resolves the acting user's customer record
func currentCustomer(c *gin.Context) (*models.Customer, bool) {
	userID, _ := c.Get("userId")
	userIDStr, _ := userID.(string)

	var customer models.Customer
	if err := config.DB.Preload("Surfboards").
		First(&customer, "user_id = ?", userIDStr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer profile not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &customer, true
}

// GetMyProfile returns the acting customer's own profile
func GetMyProfile(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetMyRepairs lists the acting customer's own repairs, newest first
func GetMyRepairs(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var repairs []models.Repair
	if err := config.DB.Preload("Annotations").
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").
		Find(&repairs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve repairs")
		return
	}

	c.JSON(http.StatusOK, repairs)
}

type UpdateMyProfileInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	Street      *string `json:"street"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postalCode"`
	Country     *string `json:"country"`
	CompanyName *string `json:"companyName"`
	VATNumber   *string `json:"vatNumber"`
}

// UpdateMyProfile lets a customer edit their own contact details.
// Email, tier and boards stay under shop control.
func UpdateMyProfile(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var input UpdateMyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	customer.FullName = customer.FirstName + " " + customer.LastName
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Street != nil {
		customer.Street = *input.Street
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.PostalCode != nil {
		customer.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		customer.Country = *input.Country
	}
	if input.CompanyName != nil {
		customer.CompanyName = *input.CompanyName
	}
	if input.VATNumber != nil {
		customer.VATNumber = *input.VATNumber
	}

	if err := config.DB.Save(customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, customer)
}
