package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurfboardInput defines one board inside a customer payload
type SurfboardInput struct {
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Size         string `json:"size" binding:"required"`
	Construction string `json:"construction" binding:"required,oneof=polyester epoxy"`
}

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	FirstName   string           `json:"firstName" binding:"required"`
	LastName    string           `json:"lastName" binding:"required"`
	Email       string           `json:"email" binding:"required,email"`
	Phone       string           `json:"phone"`
	Street      string           `json:"street"`
	City        string           `json:"city"`
	PostalCode  string           `json:"postalCode"`
	Country     string           `json:"country"`
	CompanyName string           `json:"companyName"`
	VATNumber   string           `json:"vatNumber"`
	Type        string           `json:"type" binding:"omitempty,oneof='Customer' 'Professional' 'Team Rider' 'Surf Shop'"`
	Surfboards  []SurfboardInput `json:"surfboards"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	FirstName   *string           `json:"firstName"`
	LastName    *string           `json:"lastName"`
	Email       *string           `json:"email"`
	Phone       *string           `json:"phone"`
	Street      *string           `json:"street"`
	City        *string           `json:"city"`
	PostalCode  *string           `json:"postalCode"`
	Country     *string           `json:"country"`
	CompanyName *string           `json:"companyName"`
	VATNumber   *string           `json:"vatNumber"`
	Type        *string           `json:"type" binding:"omitempty,oneof='Customer' 'Professional' 'Team Rider' 'Surf Shop'"`
	Surfboards  *[]SurfboardInput `json:"surfboards"`
}

// CreateCustomer creates a new customer record on behalf of staff
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if email already belongs to another customer
	var existingCustomer models.Customer
	if err := config.DB.Where("email = ?", email).First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       email,
		Phone:       input.Phone,
		Street:      input.Street,
		City:        input.City,
		PostalCode:  input.PostalCode,
		Country:     input.Country,
		CompanyName: input.CompanyName,
		VATNumber:   input.VATNumber,
		Type:        input.Type,
	}
	if customer.Type == "" {
		customer.Type = models.TierCustomer
	}
	for _, b := range input.Surfboards {
		customer.Surfboards = append(customer.Surfboards, models.Surfboard{
			Brand:        b.Brand,
			Model:        b.Model,
			Type:         b.Type,
			Size:         b.Size,
			Construction: b.Construction,
		})
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	notifier.Async("new-customer", func() error {
		return notifier.SendNewCustomer(&customer)
	})

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers, newest first
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Preload("Surfboards").
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Surfboards").
		First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer. When a board list is
// provided it replaces the customer's boards as a set.
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.FirstName != nil || input.LastName != nil {
		customer.FullName = customer.FirstName + " " + customer.LastName
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !utils.ValidateEmail(email) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid email address")
			return
		}
		if customer.Email != email {
			var existing models.Customer
			if err := config.DB.Where("email = ? AND id <> ?", email, customer.ID).
				First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Email = email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
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
	if input.Type != nil {
		customer.Type = *input.Type
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.Surfboards != nil {
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Surfboard{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update boards")
			return
		}
		customer.Surfboards = nil
		for _, b := range *input.Surfboards {
			customer.Surfboards = append(customer.Surfboards, models.Surfboard{
				CustomerID:   customer.ID,
				Brand:        b.Brand,
				Model:        b.Model,
				Type:         b.Type,
				Size:         b.Size,
				Construction: b.Construction,
			})
		}
	}

	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer together with any admin role record
// linked to the same identity
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Surfboard{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer boards")
		return
	}

	if customer.UserID != nil {
		if err := tx.Where("user_id = ?", *customer.UserID).Delete(&models.AdminProfile{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete linked admin profile")
			return
		}
	}

	if err := tx.Delete(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

var customerCSVHeader = []string{
	"First Name", "Last Name", "Email", "Phone",
	"Street", "City", "Postal Code", "Country",
	"Company", "VAT Number", "Type", "Boards", "Created At",
}

// customerCSVRecords flattens customers into CSV rows
func customerCSVRecords(customers []models.Customer) [][]string {
	records := [][]string{customerCSVHeader}
	for _, customer := range customers {
		boards := make([]string, 0, len(customer.Surfboards))
		for _, b := range customer.Surfboards {
			boards = append(boards, b.DisplayModel())
		}
		records = append(records, []string{
			customer.FirstName,
			customer.LastName,
			customer.Email,
			customer.Phone,
			customer.Street,
			customer.City,
			customer.PostalCode,
			customer.Country,
			customer.CompanyName,
			customer.VATNumber,
			customer.Type,
			strings.Join(boards, "; "),
			customer.CreatedAt.Format("2006-01-02"),
		})
	}
	return records
}

// ExportCustomersCSV streams the customer list as a CSV download
func ExportCustomersCSV(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Preload("Surfboards").
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	filename := fmt.Sprintf("customers_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	// Headers are already sent once streaming starts, so a write failure
	// can only be logged, not turned into an error response.
	if err := writeCustomersCSV(c.Writer, customers); err != nil {
		logger.WithError(err).Warn("customer CSV export aborted mid-stream")
	}
}

func writeCustomersCSV(w io.Writer, customers []models.Customer) error {
	writer := csv.NewWriter(w)
	return writer.WriteAll(customerCSVRecords(customers))
}
