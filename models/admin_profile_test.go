package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name          string
		admin         *AdminProfile
		customer      *Customer
		wantRole      string
		wantValidated bool
		wantErr       error
	}{
		{
			name:          "validated staff",
			admin:         &AdminProfile{Role: RoleStaff, Validated: true},
			wantRole:      RoleStaff,
			wantValidated: true,
		},
		{
			name:          "pending staff",
			admin:         &AdminProfile{Role: RoleStaff, Validated: false},
			wantRole:      RoleStaff,
			wantValidated: false,
		},
		{
			name:          "pending super admin keeps role",
			admin:         &AdminProfile{Role: RoleSuperAdmin, Validated: false},
			wantRole:      RoleSuperAdmin,
			wantValidated: false,
		},
		{
			name:          "unknown admin role downgrades to staff",
			admin:         &AdminProfile{Role: "owner", Validated: true},
			wantRole:      RoleStaff,
			wantValidated: true,
		},
		{
			name:          "admin record wins over customer record",
			admin:         &AdminProfile{Role: RoleStaff, Validated: true},
			customer:      &Customer{},
			wantRole:      RoleStaff,
			wantValidated: true,
		},
		{
			name:          "customer only is implicitly validated",
			customer:      &Customer{},
			wantRole:      RoleCustomer,
			wantValidated: true,
		},
		{
			name:    "no record rejects",
			wantErr: ErrNoProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, validated, err := ResolveRole(tt.admin, tt.customer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantRole, role)
			assert.Equal(t, tt.wantValidated, validated)
		})
	}
}
