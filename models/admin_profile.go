package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Roles resolved for a signed-in identity
const (
	RoleCustomer   = "customer"
	RoleStaff      = "staff"
	RoleSuperAdmin = "super_admin"
)

// ErrNoProfile is returned when an authenticated identity has neither an
// admin profile nor a customer record. Such a session is not valid and
// must be rejected.
var ErrNoProfile = errors.New("no profile record for identity")

// AdminProfile maps a user identity to a staff or super_admin role. It is
// created alongside the customer record when a customer is promoted; both
// records persist and role resolution prefers the admin record.
type AdminProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primary_key"`

	Role      string `gorm:"type:varchar(20);not null"`
	Validated bool   `gorm:"default:false"`

	// Denormalized for the profile listing
	Name  string
	Email string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolveRole resolves a signed-in identity to its role and validation
// flag. The admin record wins when present; customers are implicitly
// validated. An identity with no record at all is rejected.
func ResolveRole(admin *AdminProfile, customer *Customer) (role string, validated bool, err error) {
	if admin != nil {
		role = RoleStaff
		if admin.Role == RoleSuperAdmin {
			role = RoleSuperAdmin
		}
		return role, admin.Validated, nil
	}
	if customer != nil {
		return RoleCustomer, true, nil
	}
	return "", false, ErrNoProfile
}
