package model

import "time"

// Account represents a row in the `accounts` table.  Emails are stored
// lowercase and are unique.  PasswordHash holds the bcrypt digest of the
// account password; it is tagged `json:"-"` so it can never leak through
// a serialized response, and it must never be embedded in session tokens.
type Account struct {
	ID           uint64    `json:"id"`         // accounts.id
	FirstName    string    `json:"first_name"` // accounts.first_name
	LastName     string    `json:"last_name"`  // accounts.last_name
	Email        string    `json:"email"`      // accounts.email (unique, lowercase)
	PasswordHash string    `json:"-"`          // accounts.password_hash (bcrypt)
	Role         Role      `json:"role"`       // accounts.role (Client/Employee/Admin)
	CreatedAt    time.Time `json:"created_at"` // accounts.created_at
	UpdatedAt    time.Time `json:"updated_at"` // accounts.updated_at
}

// Identity is the set of account claims carried inside a session token:
// the account's public fields, never the password hash.  It is what the
// session middleware attaches to the request context after verification.
type Identity struct {
	AccountID uint64 `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// IdentityOf strips an account down to its token-safe claims.
func IdentityOf(a Account) Identity {
	return Identity{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}
