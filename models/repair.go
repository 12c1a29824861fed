package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repair lifecycle statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusAborted    = "aborted"
)

// Repair priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Discount modes
const (
	DiscountPercentage = "percentage"
	DiscountAmount     = "amount"
)

// Board sides an annotation can be placed on
const (
	SideTop    = "top"
	SideBottom = "bottom"
)

// Repair is one work order for fixing a surfboard: the annotated damage
// locations plus the price quote snapshotted at save time.
type Repair struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	// Human-facing 5-digit ticket number, printed on the board tag and
	// used for the public status lookup.
	RepairNumber int `gorm:"uniqueIndex;not null"`

	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerName string    `gorm:"not null"`

	SurfboardID  uuid.UUID `gorm:"type:uuid;not null"`
	BoardModel   string    `gorm:"not null"`
	Construction string    `gorm:"type:varchar(20);not null"`

	Annotations []RepairAnnotation `gorm:"foreignKey:RepairID;constraint:OnDelete:CASCADE"`

	Status       string    `gorm:"type:varchar(20);default:'pending'"`
	Priority     string    `gorm:"type:varchar(10);default:'medium'"`
	DeliveryDate time.Time `gorm:"index;not null"`

	Seller   string
	Operator string

	IsDirect bool `gorm:"default:false"`

	// Pricing snapshot. Derived solely from the annotation list at save
	// time; never recomputed from the live catalog afterwards.
	Subtotal       float64 `gorm:"type:decimal(10,2);not null"`
	DiscountType   string  `gorm:"type:varchar(10);default:'percentage'"`
	DiscountValue  float64 `gorm:"type:decimal(10,2);default:0.0"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total          float64 `gorm:"type:decimal(10,2);not null"`

	gorm.Model
}

func (r *Repair) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// RepairAnnotation is one placed marker on the board diagram. The repair
// type fields are copied onto the annotation when the quote is saved so
// historical quotes stay stable when the catalog changes.
type RepairAnnotation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	RepairID uuid.UUID `gorm:"type:uuid;index;not null"`

	TypeID   uuid.UUID `gorm:"type:uuid;not null"`
	TypeName string    `gorm:"not null"`
	Category string    `gorm:"type:varchar(20)"`
	Color    string    `gorm:"type:varchar(10)"`

	PricePolyester float64 `gorm:"type:decimal(10,2);not null"`
	PriceEpoxy     float64 `gorm:"type:decimal(10,2);not null"`

	Quantity int     `gorm:"default:1"`
	Side     string  `gorm:"type:varchar(10);not null"`
	X        float64 `gorm:"not null"`
	Y        float64 `gorm:"not null"`
	Location string
}

func (a *RepairAnnotation) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// UnitPrice selects the applicable price column for a construction.
func (a *RepairAnnotation) UnitPrice(construction string) float64 {
	if construction == ConstructionEpoxy {
		return a.PriceEpoxy
	}
	return a.PricePolyester
}

var statusTransitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusAborted},
	StatusInProgress: {StatusFinished, StatusAborted},
	StatusFinished:   {},
	StatusAborted:    {},
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether the repair may move to the given status.
// Finished and aborted are terminal.
func (r *Repair) CanTransition(to string) bool {
	for _, next := range statusTransitions[r.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the repair to the given status on behalf of the
// acting staff member. Starting work assigns the operator if none is set;
// later transitions never reassign it.
func (r *Repair) ApplyTransition(to, actor string) bool {
	if !r.CanTransition(to) {
		return false
	}
	if to == StatusInProgress && r.Operator == "" {
		r.Operator = actor
	}
	r.Status = to
	return true
}
