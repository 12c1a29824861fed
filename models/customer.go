package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer tiers. The tier is informational except for company details,
// which only apply to Professional and Surf Shop accounts.
const (
	TierCustomer     = "Customer"
	TierProfessional = "Professional"
	TierTeamRider    = "Team Rider"
	TierSurfShop     = "Surf Shop"
)

// Surfboard construction materials. The construction selects which
// price column of a repair type applies.
const (
	ConstructionPolyester = "polyester"
	ConstructionEpoxy     = "epoxy"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	// Login identity, when the customer registered themselves. Staff-created
	// customers have no linked user until they are invited.
	UserID *uuid.UUID `gorm:"type:uuid;index"`

	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	FullName  string `gorm:"not null"`
	Email     string `gorm:"index;not null"`
	Phone     string

	Street     string
	City       string
	PostalCode string
	Country    string

	CompanyName string
	VATNumber   string

	Type string `gorm:"type:varchar(20);default:'Customer'"`

	Surfboards []Surfboard `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.FullName == "" {
		c.FullName = c.FirstName + " " + c.LastName
	}
	return
}

// Surfboard is owned by exactly one customer and is only ever managed
// through the customer endpoints.
type Surfboard struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Brand        string `gorm:"not null"`
	Model        string `gorm:"not null"`
	Type         string `gorm:"not null"`
	Size         string `gorm:"not null"`
	Construction string `gorm:"type:varchar(20);default:'polyester'"`
}

func (s *Surfboard) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// DisplayModel is the denormalized board label stored on repairs,
// e.g. "Channel Islands Fever (6'2)".
func (s *Surfboard) DisplayModel() string {
	return s.Brand + " " + s.Model + " (" + s.Size + ")"
}
