// This file defines repository methods for vehicle classifications.  A
// Classification is a category referenced by vehicles via foreign key;
// rows are created by employees and only ever read afterwards.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/dealership-inventory/internal/model"
)

// ClassificationRepo encapsulates all database queries related to
// classifications.
type ClassificationRepo struct {
	db *sql.DB
}

// NewClassificationRepo constructs a ClassificationRepo with the provided
// DB handle.
func NewClassificationRepo(db *sql.DB) *ClassificationRepo {
	return &ClassificationRepo{db: db}
}

// Create inserts a new classification.  The name column carries a unique
// index, so a duplicate name surfaces as ErrClassificationExists instead
// of a second row.  On success the ID field is populated.
func (r *ClassificationRepo) Create(ctx context.Context, c *model.Classification) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO classifications (name) VALUES (?)", c.Name)
	if err != nil {
		if isDuplicate(err) {
			return ErrClassificationExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// ListAll returns all classifications ordered by name.
func (r *ClassificationRepo) ListAll(ctx context.Context) ([]model.Classification, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name FROM classifications ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Classification
	for rows.Next() {
		var c model.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a classification with the given id is present.
// Vehicle validation uses this to reject submissions against a missing
// category before any insert is attempted.
func (r *ClassificationRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM classifications WHERE id=?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

