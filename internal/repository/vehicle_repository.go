package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/dealership-inventory/internal/model"
)

// VehicleRepo encapsulates all database queries related to vehicles.
// Numeric fields are already coerced by the time they reach this layer;
// the repository never re-validates.
type VehicleRepo struct {
	db *sql.DB
}

// NewVehicleRepo constructs a VehicleRepo with the provided DB handle.
func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleCols = `v.id, v.classification_id, v.make, v.model, v.year,
	v.description, v.price, v.miles, v.color, v.image_path, v.thumbnail_path`

// Create inserts a new vehicle.  On success the ID field is populated.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles
		 (classification_id, make, model, year, description, price, miles, color, image_path, thumbnail_path)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		v.ClassificationID, v.Make, v.Model, v.Year, v.Description, v.Price, v.Miles, v.Color, v.ImagePath, v.ThumbnailPath)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches one vehicle, returning ErrVehicleNotFound when absent.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.QueryRowContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles v WHERE v.id=? LIMIT 1", id).Scan(
		&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year,
		&v.Description, &v.Price, &v.Miles, &v.Color, &v.ImagePath, &v.ThumbnailPath)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vehicle{}, ErrVehicleNotFound
	}
	return v, err
}

// ListByClassification returns all vehicles in one classification joined
// with the classification name, ordered by make then model.  An unknown
// classification simply yields an empty slice.
func (r *VehicleRepo) ListByClassification(ctx context.Context, classificationID uint64) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vehicleCols+`, c.name
		 FROM vehicles v
		 JOIN classifications c ON c.id = v.classification_id
		 WHERE v.classification_id = ?
		 ORDER BY v.make, v.model`, classificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(
			&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year,
			&v.Description, &v.Price, &v.Miles, &v.Color, &v.ImagePath, &v.ThumbnailPath,
			&v.ClassificationName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites every mutable column of an existing vehicle.  Returns
// ErrVehicleNotFound when the id does not exist.
func (r *VehicleRepo) Update(ctx context.Context, v *model.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vehicles
		 SET classification_id=?, make=?, model=?, year=?, description=?,
		     price=?, miles=?, color=?, image_path=?, thumbnail_path=?
		 WHERE id=?`,
		v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Price, v.Miles, v.Color, v.ImagePath, v.ThumbnailPath, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetByID(ctx, v.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes a vehicle, returning ErrVehicleNotFound when the id does
// not exist.
func (r *VehicleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vehicles WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
