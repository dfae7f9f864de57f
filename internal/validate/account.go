package validate

import "strings"

// Messages for failures that depend on the credential store.  Handlers
// evaluate those checks and attach these texts to the same failure list
// the rule sets produce.
const (
	MsgEmailExists = "Email exists. Please log in or use different email"
	MsgFirstName   = "Please provide a first name."
	MsgLastName    = "Please provide a last name."
	MsgEmail       = "A valid email is required."
	MsgPassword    = "Password does not meet requirements."
)

// RegisterForm carries a registration submission.
type RegisterForm struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,min=2"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,strongpassword"`
}

var registerMessages = map[string]string{
	"first_name": MsgFirstName,
	"last_name":  MsgLastName,
	"email":      MsgEmail,
	"password":   MsgPassword,
}

// Register checks a registration submission.  Email uniqueness is the
// caller's store check.
func Register(f *RegisterForm) []FieldError {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
	return run(f, registerMessages)
}

// LoginForm carries a login attempt.
type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email":    MsgEmail,
	"password": "Please provide a password.",
}

// Login checks a login attempt.  The password is only required to be
// present: whether it is correct is decided against the stored hash, and
// no existence probe of the email happens here, so a wrong password and
// an unknown account are indistinguishable to the caller.
func Login(f *LoginForm) []FieldError {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
	return run(f, loginMessages)
}

// UpdateAccountForm carries a profile update: registration fields minus
// the password.
type UpdateAccountForm struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,min=2"`
	Email     string `json:"email" form:"email" validate:"required,email"`
}

// UpdateAccount checks a profile update.  The email-uniqueness store
// check is the caller's, and only applies when the email changed.
func UpdateAccount(f *UpdateAccountForm) []FieldError {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return run(f, map[string]string{
		"first_name": MsgFirstName,
		"last_name":  MsgLastName,
		"email":      MsgEmail,
	})
}

// UpdatePasswordForm carries a password change.
type UpdatePasswordForm struct {
	Password string `json:"password" form:"password" validate:"required,strongpassword"`
}

// UpdatePassword checks a password change against the full strength rule.
func UpdatePassword(f *UpdatePasswordForm) []FieldError {
	f.Password = strings.TrimSpace(f.Password)
	return run(f, map[string]string{
		"password": "Password does not meet security requirements.",
	})
}

// UpdateRoleForm carries an admin account-type change, keyed by email.
type UpdateRoleForm struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	Role  string `json:"role" form:"role" validate:"required,oneof=Client Employee Admin"`
}

// UpdateRole checks an account-type change.
func UpdateRole(f *UpdateRoleForm) []FieldError {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Role = strings.TrimSpace(f.Role)
	return run(f, map[string]string{
		"email": MsgEmail,
		"role":  "Account type must be 'Client', 'Employee', or 'Admin'.",
	})
}
