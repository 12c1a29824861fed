package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repair type categories
const (
	CategoryDings   = "dings"
	CategoryFins    = "fins"
	CategoryOptions = "options"
)

// RepairType is a global catalog entry managed by staff via settings.
// Both price columns are carried so the applicable one can be selected
// by the board construction at quote time.
type RepairType struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	Name     string `gorm:"not null"`
	Category string `gorm:"type:varchar(20);not null"`
	Color    string `gorm:"type:varchar(10);not null"`

	PricePolyester float64 `gorm:"type:decimal(10,2);not null"`
	PriceEpoxy     float64 `gorm:"type:decimal(10,2);not null"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (r *RepairType) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// DefaultRepairTypes is the catalog a fresh installation starts with.
func DefaultRepairTypes() []RepairType {
	return []RepairType{
		{Name: "Small Ding", Category: CategoryDings, PricePolyester: 45, PriceEpoxy: 55, Color: "#E3F2FD", IsActive: true},
		{Name: "Medium Ding", Category: CategoryDings, PricePolyester: 65, PriceEpoxy: 75, Color: "#90CAF9", IsActive: true},
		{Name: "Large Ding", Category: CategoryDings, PricePolyester: 85, PriceEpoxy: 95, Color: "#2196F3", IsActive: true},
		{Name: "Fin Box Repair", Category: CategoryFins, PricePolyester: 95, PriceEpoxy: 105, Color: "#4CAF50", IsActive: true},
		{Name: "Full Paint Job", Category: CategoryOptions, PricePolyester: 150, PriceEpoxy: 180, Color: "#9C27B0", IsActive: true},
	}
}
