package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/services"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Shared collaborators, wired once from main.
var (
	notifier *services.Notifier
	logger   = logrus.StandardLogger()
)

func Setup(n *services.Notifier, log *logrus.Logger) {
	notifier = n
	logger = log
}

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a login identity plus its customer profile. New
// accounts always start as customers; staff roles are granted later via
// the admin profiles screen.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "This email is already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:     email,
		Password:  input.Password, // Will be hashed in BeforeCreate hook
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsActive:  true,
	}

	// Create user and customer profile together
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&newUser).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	customer := models.Customer{
		UserID:    &newUser.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Type:      models.TierCustomer,
	}
	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer profile")
		return
	}

	tx.Commit()

	notifier.Async("new-customer", func() error {
		return notifier.SendNewCustomer(&customer)
	})

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.Email, models.RoleCustomer, true)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":        newUser.ID,
			"email":     newUser.Email,
			"firstName": newUser.FirstName,
			"lastName":  newUser.LastName,
			"role":      models.RoleCustomer,
			"validated": true,
		},
	})
}

// Login authenticates an identity and resolves its role: the admin
// profile wins when present, otherwise the customer record, otherwise
// the session is rejected outright.
func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	admin, customer := lookupProfiles(user.ID.String())
	role, validated, err := models.ResolveRole(admin, customer)
	if err != nil {
		// Authenticated identity without any profile record is not a
		// valid session.
		utils.RespondWithError(c, http.StatusUnauthorized, "Account not properly configured")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Email, role, validated)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"role":      role,
			"validated": validated,
		},
	})
}

// Me returns the current identity with its resolved role and, for
// customers, the attached profile.
func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	admin, customer := lookupProfiles(user.ID.String())
	role, validated, err := models.ResolveRole(admin, customer)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account not properly configured")
		return
	}

	response := gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"role":      role,
		"validated": validated,
	}
	if customer != nil {
		response["customer"] = customer
	}

	c.JSON(http.StatusOK, gin.H{"user": response})
}

// CheckEmail reports whether an account exists for the given email.
func CheckEmail(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if !utils.ValidateEmail(email) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword issues a short-lived reset token. The response never
// reveals whether the email exists.
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err == nil {
		if token, err := utils.GenerateResetToken(user.ID.String()); err == nil {
			logger.WithFields(logrus.Fields{
				"email": email,
				"token": token,
			}).Info("password reset token issued")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, reset instructions have been sent"})
}

type ResetPasswordInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ResetPassword sets a new password for a valid reset token.
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	userID, err := utils.ParseResetToken(input.Token)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired reset token")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", userID).Update("password", hashed)
	if result.Error != nil || result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// lookupProfiles fetches the admin and customer records for an identity.
// Either may be nil.
func lookupProfiles(userID string) (*models.AdminProfile, *models.Customer) {
	var admin models.AdminProfile
	var adminPtr *models.AdminProfile
	if err := config.DB.First(&admin, "user_id = ?", userID).Error; err == nil {
		adminPtr = &admin
	}

	var customer models.Customer
	var customerPtr *models.Customer
	if err := config.DB.Preload("Surfboards").First(&customer, "user_id = ?", userID).Error; err == nil {
		customerPtr = &customer
	}

	return adminPtr, customerPtr
}
