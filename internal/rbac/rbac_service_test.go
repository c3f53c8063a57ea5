package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	"github.com/alok-mishra143/leave-management-backend/internal/rbac"
)

func TestService_Enforce(t *testing.T) {
	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)
	svc := rbac.NewService(enforcer)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"admin manages users", domain.RoleAdmin, "user", "create", true},
		{"student cannot manage users", domain.RoleStudent, "user", "create", false},
		{"student applies for leave", domain.RoleStudent, "leave", "create", true},
		{"student cannot approve leave", domain.RoleStudent, "leave", "approve", false},
		{"hod approves leave", domain.RoleHOD, "leave", "approve", true},
		{"staff reads leave list", domain.RoleStaff, "leave", "read", true},
		{"student reads own leaves", domain.RoleStudent, "leave", "read_own", true},
		{"student cannot read the full list", domain.RoleStudent, "leave", "read", false},
		{"hod cannot read balances directly", domain.RoleHOD, "balance", "read", false},
		{"everyone reads dashboard", domain.RoleStudent, "dashboard", "read", true},
		{"unknown role denied", "JANITOR", "leave", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				UserID:   "u-1",
				Role:     tt.role,
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}
