package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOrdering(t *testing.T) {
	// The gate is a superset relation, not equality: Admin clears every
	// bar, Client only its own.
	assert.True(t, RoleAdmin.AtLeast(RoleEmployee))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleEmployee.AtLeast(RoleClient))
	assert.True(t, RoleEmployee.AtLeast(RoleEmployee))
	assert.True(t, RoleClient.AtLeast(RoleClient))

	assert.False(t, RoleEmployee.AtLeast(RoleAdmin))
	assert.False(t, RoleClient.AtLeast(RoleEmployee))
	assert.False(t, RoleClient.AtLeast(RoleAdmin))
}

func TestRoleUnknownNeverPasses(t *testing.T) {
	var unknown Role = "Superuser"
	assert.False(t, unknown.Valid())
	assert.False(t, unknown.AtLeast(RoleClient))
	assert.False(t, unknown.AtLeast(unknown))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("Employee")
	assert.True(t, ok)
	assert.Equal(t, RoleEmployee, r)

	// Roles are a closed enum and case sensitive.
	_, ok = ParseRole("employee")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestIdentityOfStripsHash(t *testing.T) {
	a := Account{
		ID:           7,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         RoleAdmin,
	}
	ident := IdentityOf(a)
	assert.Equal(t, a.ID, ident.AccountID)
	assert.Equal(t, a.Email, ident.Email)
	assert.Equal(t, a.Role, ident.Role)
}
