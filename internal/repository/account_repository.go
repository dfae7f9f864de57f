package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/dealership-inventory/internal/model"
)

// AccountRepo encapsulates all database queries related to accounts.  It
// depends on a sql.DB connection pool configured at startup.  Password
// hashes are computed by the caller; the repository only persists them
// and never hands them anywhere except the returned model.
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo constructs an AccountRepo with the provided DB handle.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

const accountCols = "id, first_name, last_name, email, password_hash, role, created_at, updated_at"

func scanAccount(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts a new account and returns its ID.  Email is normalized
// to lowercase so uniqueness is case-insensitive.  New accounts always
// start as Client; role promotion is a separate admin operation.
func (r *AccountRepo) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO accounts (first_name, last_name, email, password_hash, role) VALUES (?,?,?,?,?)",
		firstName, lastName, email, passwordHash, model.RoleClient)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrAccountNotFound
	}
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrAccountNotFound
	}
	return a, err
}

// EmailExists reports whether any account already uses the given email.
// Used by registration validation before the insert is attempted.
func (r *AccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE email=?", email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAll returns every account ordered by last then first name.  The
// password hash column is deliberately not selected: the listing feeds
// the admin account view and hashes have no business there.
func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, email, role, created_at, updated_at FROM accounts ORDER BY last_name, first_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Role, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile updates first name, last name and email for one account.
// Returns ErrAccountNotFound when no row is affected and ErrEmailExists
// when the new email collides with another account.
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET first_name=?, last_name=?, email=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		firstName, lastName, email, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero when the values were unchanged, which
		// MySQL does not count as a modification.  Distinguish by probing.
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

// UpdatePassword replaces the stored hash for one account.
func (r *AccountRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		passwordHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

// UpdateRoleByEmail changes the role of the account with the given email.
// The admin view keys this operation on email, matching the account
// management form.
func (r *AccountRepo) UpdateRoleByEmail(ctx context.Context, email string, role model.Role) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET role=?, updated_at=CURRENT_TIMESTAMP WHERE email=?",
		role, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetByEmail(ctx, email); gerr != nil {
			return gerr
		}
	}
	return nil
}

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062 on a unique index).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
