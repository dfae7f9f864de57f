package model

// Role is the access tier of an account.  Roles form a total order
// (Client < Employee < Admin) and gate mutating operations: Employee
// and above may manage inventory, only Admin may manage accounts.
type Role string

const (
	RoleClient   Role = "Client"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// rank maps each role onto its position in the ordering.  Unknown
// roles rank below every valid role so they never pass a gate.
func (r Role) rank() int {
	switch r {
	case RoleClient:
		return 1
	case RoleEmployee:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// Valid reports whether r is one of the three defined roles.
func (r Role) Valid() bool { return r.rank() > 0 }

// AtLeast reports whether r sits at or above min in the role ordering.
// An invalid role is never at least anything.
func (r Role) AtLeast(min Role) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

// ParseRole converts a raw string into a Role.  The second return
// value is false when the string is not a defined role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
