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

// AccountView is what super admins see in the access management screen:
// every registered user together with its effective role.
type AccountView struct {
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Validated bool      `json:"validated"`
}

// GetAccounts lists all user accounts with their resolved role
func GetAccounts(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve accounts")
		return
	}

	var profiles []models.AdminProfile
	if err := config.DB.Find(&profiles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve admin profiles")
		return
	}
	byUser := make(map[uuid.UUID]models.AdminProfile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	accounts := make([]AccountView, 0, len(users))
	for _, user := range users {
		view := AccountView{
			UserID:    user.ID,
			Name:      user.FullName(),
			Email:     user.Email,
			Role:      models.RoleCustomer,
			Validated: true,
		}
		if profile, ok := byUser[user.ID]; ok {
			view.Role = profile.Role
			view.Validated = profile.Validated
		}
		accounts = append(accounts, view)
	}

	c.JSON(http.StatusOK, accounts)
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=customer staff super_admin"`
}

// UpdateAccountRole promotes or demotes a user. Promoting creates the
// admin profile already validated; demoting to customer removes it.
func UpdateAccountRole(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Role == models.RoleCustomer {
		if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.AdminProfile{}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update role")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "role": models.RoleCustomer})
		return
	}

	var profile models.AdminProfile
	err = config.DB.First(&profile, "user_id = ?", user.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.AdminProfile{
			UserID:    user.ID,
			Role:      input.Role,
			Validated: true,
			Name:      user.FullName(),
			Email:     user.Email,
		}
		if err := config.DB.Create(&profile).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create admin profile")
			return
		}
	case err != nil:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	default:
		if err := config.DB.Model(&profile).Update("role", input.Role).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update role")
			return
		}
		profile.Role = input.Role
	}

	c.JSON(http.StatusOK, profile)
}

type ValidateAccountInput struct {
	Validated bool `json:"validated"`
}

// ValidateAccount flips the validation flag that gates staff access
func ValidateAccount(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input ValidateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var profile models.AdminProfile
	if err := config.DB.First(&profile, "user_id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Admin profile not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&profile).Update("validated", input.Validated).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update validation")
		return
	}
	profile.Validated = input.Validated

	c.JSON(http.StatusOK, profile)
}

// DeleteAdminProfile revokes staff access by removing the admin record.
// The login identity and any customer record are kept, so the account
// falls back to the customer role on next login.
func DeleteAdminProfile(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	actorID, _ := c.Get("userId")
	if actorUUID, ok := actorID.(string); ok && actorUUID == userUUID.String() {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot revoke your own access")
		return
	}

	result := config.DB.Where("user_id = ?", userUUID).Delete(&models.AdminProfile{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete admin profile")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Admin profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin profile deleted successfully"})
}
