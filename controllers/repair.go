package controllers

import (
	"errors"
	"net/http"
	"time"

	"surfrepair-backend/config"
	"surfrepair-backend/models"
	"surfrepair-backend/pricing"
	"surfrepair-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnotationInput defines one placed repair marker in a quote payload.
// Coordinates are percentages of the board image bounds; they are
// clamped server-side.
type AnnotationInput struct {
	TypeID   uuid.UUID `json:"typeId" binding:"required"`
	Quantity int       `json:"quantity" binding:"omitempty,min=1"`
	Side     string    `json:"side" binding:"required,oneof=top bottom"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Location string    `json:"location"`
}

// CreateRepairInput defines the expected JSON structure for quoting a repair
type CreateRepairInput struct {
	CustomerID    uuid.UUID         `json:"customerId" binding:"required"`
	SurfboardID   uuid.UUID         `json:"surfboardId" binding:"required"`
	Annotations   []AnnotationInput `json:"annotations" binding:"required,min=1"`
	DiscountType  string            `json:"discountType" binding:"omitempty,oneof=percentage amount"`
	DiscountValue float64           `json:"discountValue" binding:"min=0"`
	Priority      string            `json:"priority" binding:"omitempty,oneof=low medium high"`
	DeliveryDate  *time.Time        `json:"deliveryDate"`
	Status        string            `json:"status" binding:"omitempty,oneof=pending in_progress finished aborted"`
	IsDirect      bool              `json:"isDirect"`
}

// UpdateRepairInput defines the expected JSON structure for editing a repair
type UpdateRepairInput struct {
	Annotations   *[]AnnotationInput `json:"annotations"`
	DiscountType  *string            `json:"discountType" binding:"omitempty,oneof=percentage amount"`
	DiscountValue *float64           `json:"discountValue" binding:"omitempty,min=0"`
	Priority      *string            `json:"priority" binding:"omitempty,oneof=low medium high"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	IsDirect      *bool              `json:"isDirect"`
}

// annotationFromType copies the catalog entry's fields onto a fresh
// annotation so the quote stays stable when the catalog later changes.
// Quantity defaults to 1; coordinates are clamped to the board bounds.
func annotationFromType(repairType models.RepairType, item AnnotationInput) models.RepairAnnotation {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return models.RepairAnnotation{
		TypeID:         repairType.ID,
		TypeName:       repairType.Name,
		Category:       repairType.Category,
		Color:          repairType.Color,
		PricePolyester: repairType.PricePolyester,
		PriceEpoxy:     repairType.PriceEpoxy,
		Quantity:       quantity,
		Side:           item.Side,
		X:              pricing.ClampPercent(item.X),
		Y:              pricing.ClampPercent(item.Y),
		Location:       item.Location,
	}
}

// snapshotAnnotations resolves the referenced repair types and snapshots
// their fields onto fresh annotations.
func snapshotAnnotations(db *gorm.DB, items []AnnotationInput) ([]models.RepairAnnotation, error) {
	annotations := make([]models.RepairAnnotation, 0, len(items))
	for _, item := range items {
		var repairType models.RepairType
		if err := db.First(&repairType, "id = ?", item.TypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("repair type not found: " + item.TypeID.String())
			}
			return nil, err
		}

		annotations = append(annotations, annotationFromType(repairType, item))
	}
	return annotations, nil
}

// setInitialStatus moves a freshly quoted repair from pending into its
// requested starting status through the regular transition rules, so
// creating a repair already in progress still assigns the operator and
// creating one as finished is rejected like any other illegal jump.
func setInitialStatus(repair *models.Repair, status, actor string) bool {
	if status == "" || status == models.StatusPending {
		return true
	}
	return repair.ApplyTransition(status, actor)
}

// pricingLines converts stored annotations into calculator lines
func pricingLines(annotations []models.RepairAnnotation) []pricing.Line {
	lines := make([]pricing.Line, 0, len(annotations))
	for _, a := range annotations {
		lines = append(lines, pricing.Line{
			Side:           a.Side,
			Quantity:       a.Quantity,
			PricePolyester: a.PricePolyester,
			PriceEpoxy:     a.PriceEpoxy,
		})
	}
	return lines
}

// applyQuote writes a computed quote onto the repair's pricing snapshot
func applyQuote(repair *models.Repair, quote pricing.Quote) {
	repair.Subtotal = quote.Subtotal
	repair.DiscountType = quote.DiscountType
	repair.DiscountValue = quote.DiscountValue
	repair.DiscountAmount = quote.DiscountAmount
	repair.Total = quote.Total
}

// nextRepairNumber draws random 5-digit ticket numbers until one is free
func nextRepairNumber(db *gorm.DB) (int, error) {
	for attempt := 0; attempt < 10; attempt++ {
		number := utils.GenerateRepairNumber()
		var count int64
		if err := db.Model(&models.Repair{}).Where("repair_number = ?", number).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return number, nil
		}
	}
	return 0, errors.New("could not allocate repair number")
}

// CreateRepair quotes a new repair: snapshots the annotation prices,
// computes the total and assigns the human-facing ticket number.
func CreateRepair(c *gin.Context) {
	actor, _ := c.Get("email")
	actorEmail, _ := actor.(string)

	var input CreateRepairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var board models.Surfboard
	if err := config.DB.Where("customer_id = ? AND id = ?", customer.ID, input.SurfboardID).
		First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Board not found for this customer")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	annotations, err := snapshotAnnotations(config.DB, input.Annotations)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	discountType := input.DiscountType
	if discountType == "" {
		discountType = models.DiscountPercentage
	}
	quote := pricing.Calculate(pricingLines(annotations), board.Construction, discountType, input.DiscountValue)

	repairNumber, err := nextRepairNumber(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to allocate repair number")
		return
	}

	deliveryDate := utils.DefaultDeliveryDate(time.Now())
	if input.DeliveryDate != nil {
		deliveryDate = utils.BeginningOfDay(*input.DeliveryDate)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	repair := models.Repair{
		RepairNumber: repairNumber,
		CustomerID:   customer.ID,
		CustomerName: customer.FullName,
		SurfboardID:  board.ID,
		BoardModel:   board.DisplayModel(),
		Construction: board.Construction,
		Annotations:  annotations,
		Status:       models.StatusPending,
		Priority:     priority,
		DeliveryDate: deliveryDate,
		Seller:       actorEmail,
		IsDirect:     input.IsDirect,
	}
	applyQuote(&repair, quote)

	if !setInitialStatus(&repair, input.Status, actorEmail) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot create repair with status "+input.Status)
		return
	}

	if err := config.DB.Create(&repair).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create repair")
		return
	}

	notifier.Async("new-repair", func() error {
		return notifier.SendNewRepair(&repair, &customer)
	})

	c.JSON(http.StatusCreated, repair)
}

// GetRepairs retrieves all repairs, newest first
func GetRepairs(c *gin.Context) {
	var repairs []models.Repair
	if err := config.DB.Preload("Annotations").
		Order("created_at DESC").
		Find(&repairs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve repairs")
		return
	}

	c.JSON(http.StatusOK, repairs)
}

// GetRepair retrieves a specific repair by ID
func GetRepair(c *gin.Context) {
	repairUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair ID format")
		return
	}

	var repair models.Repair
	if err := config.DB.Preload("Annotations").
		First(&repair, "id = ?", repairUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, repair)
}

// UpdateRepair edits a repair. When annotations or the discount change
// the quote is re-snapshotted and repriced from the current catalog.
func UpdateRepair(c *gin.Context) {
	repairUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair ID format")
		return
	}

	var input UpdateRepairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var repair models.Repair
	if err := tx.Preload("Annotations").
		First(&repair, "id = ?", repairUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Annotations != nil {
		annotations, err := snapshotAnnotations(tx, *input.Annotations)
		if err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}

		if err := tx.Where("repair_id = ?", repair.ID).Delete(&models.RepairAnnotation{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing annotations")
			return
		}
		for i := range annotations {
			annotations[i].RepairID = repair.ID
		}
		repair.Annotations = annotations
	}

	if input.DiscountType != nil {
		repair.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		repair.DiscountValue = *input.DiscountValue
	}

	// Reprice when anything feeding the quote changed
	if input.Annotations != nil || input.DiscountType != nil || input.DiscountValue != nil {
		quote := pricing.Calculate(pricingLines(repair.Annotations), repair.Construction,
			repair.DiscountType, repair.DiscountValue)
		applyQuote(&repair, quote)
	}

	if input.Priority != nil {
		repair.Priority = *input.Priority
	}
	if input.DeliveryDate != nil {
		repair.DeliveryDate = utils.BeginningOfDay(*input.DeliveryDate)
	}
	if input.IsDirect != nil {
		repair.IsDirect = *input.IsDirect
	}

	if err := tx.Save(&repair).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update repair")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, repair)
}

// DeleteRepair removes a repair and its annotations
func DeleteRepair(c *gin.Context) {
	repairUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var repair models.Repair
	if err := tx.First(&repair, "id = ?", repairUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("repair_id = ?", repair.ID).Delete(&models.RepairAnnotation{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete annotations")
		return
	}

	if err := tx.Delete(&repair).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete repair")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Repair deleted successfully"})
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress finished aborted"`
}

// UpdateRepairStatus applies a lifecycle transition. Starting work
// assigns the operator; finishing fires the customer notification as a
// best-effort side effect that never rolls back the status change.
func UpdateRepairStatus(c *gin.Context) {
	actor, _ := c.Get("email")
	actorEmail, _ := actor.(string)

	repairUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair ID format")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var repair models.Repair
	if err := config.DB.Preload("Annotations").
		First(&repair, "id = ?", repairUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !repair.ApplyTransition(input.Status, actorEmail) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot transition repair from "+repair.Status+" to "+input.Status)
		return
	}

	if err := config.DB.Model(&repair).
		Updates(map[string]interface{}{
			"status":   repair.Status,
			"operator": repair.Operator,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update repair status")
		return
	}

	if repair.Status == models.StatusFinished {
		var customer models.Customer
		if err := config.DB.First(&customer, "id = ?", repair.CustomerID).Error; err == nil {
			notifier.Async("repair-finished", func() error {
				return notifier.SendRepairFinished(&repair, &customer)
			})
		} else {
			logger.WithError(err).WithField("repair", repair.RepairNumber).
				Warn("customer lookup for finished notification failed")
		}
	}

	c.JSON(http.StatusOK, repair)
}

type UpdateDeliveryDateInput struct {
	DeliveryDate time.Time `json:"deliveryDate" binding:"required"`
}

// UpdateRepairDeliveryDate moves a repair to a new day on the calendar
func UpdateRepairDeliveryDate(c *gin.Context) {
	repairUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid repair ID format")
		return
	}

	var input UpdateDeliveryDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var repair models.Repair
	if err := config.DB.First(&repair, "id = ?", repairUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Repair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	repair.DeliveryDate = utils.BeginningOfDay(input.DeliveryDate)
	if err := config.DB.Model(&repair).Update("delivery_date", repair.DeliveryDate).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update delivery date")
		return
	}

	c.JSON(http.StatusOK, repair)
}

// GetRepairCalendar groups repairs by delivery date for the planning views
func GetRepairCalendar(c *gin.Context) {
	query := config.DB.Preload("Annotations").Order("delivery_date ASC")

	if start := c.Query("start"); start != "" {
		startDate, err := time.Parse("2006-01-02", start)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("delivery_date >= ?", startDate)
	}
	if end := c.Query("end"); end != "" {
		endDate, err := time.Parse("2006-01-02", end)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("delivery_date <= ?", endDate)
	}

	var repairs []models.Repair
	if err := query.Find(&repairs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve repairs")
		return
	}

	calendar := make(map[string][]models.Repair)
	for _, repair := range repairs {
		day := repair.DeliveryDate.Format("2006-01-02")
		calendar[day] = append(calendar[day], repair)
	}

	c.JSON(http.StatusOK, calendar)
}

// PlaceAnnotationInput is a pointer drop inside the board image bounds.
// Offsets carry no required tag: zero is a legitimate drop position (the
// rectangle's top-left corner).
type PlaceAnnotationInput struct {
	OffsetX float64      `json:"offsetX"`
	OffsetY float64      `json:"offsetY"`
	Rect    pricing.Rect `json:"rect" binding:"required"`
}

// PlaceAnnotation maps a pixel drop position to percentage coordinates
// clamped to the board bounds, for the annotation editor
func PlaceAnnotation(c *gin.Context) {
	var input PlaceAnnotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Rect.Width <= 0 || input.Rect.Height <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Board rectangle must have positive dimensions")
		return
	}

	x, y := pricing.MarkerPosition(input.OffsetX, input.OffsetY, input.Rect)
	c.JSON(http.StatusOK, gin.H{"x": x, "y": y})
}
