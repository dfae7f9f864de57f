package model

// Default image paths used when a vehicle is added without pictures.
const (
	DefaultVehicleImage     = "/images/vehicles/no-image.png"
	DefaultVehicleThumbnail = "/images/vehicles/no-image-tn.png"
)

// Classification is a named vehicle category (e.g. "SUV", "Sedan").
// Names are alphanumeric and unique; classifications are created by
// employees and referenced by vehicles, never updated or deleted.
type Classification struct {
	ID   uint64 `json:"id"`   // classifications.id
	Name string `json:"name"` // classifications.name (unique)
}

// Vehicle represents a row in the `vehicles` table.  Year, Price and
// Miles arrive from forms as text and are coerced exactly once, after
// validation.  ClassificationName is populated only by list queries
// that join against classifications.
type Vehicle struct {
	ID                 uint64  `json:"id"`                            // vehicles.id
	ClassificationID   uint64  `json:"classification_id"`             // vehicles.classification_id (FK)
	Make               string  `json:"make"`                          // vehicles.make
	Model              string  `json:"model"`                         // vehicles.model
	Year               int     `json:"year"`                          // vehicles.year, within [1900, 2099]
	Description        string  `json:"description"`                   // vehicles.description
	Price              float64 `json:"price"`                         // vehicles.price, > 0
	Miles              int64   `json:"miles"`                         // vehicles.miles, >= 0
	Color              string  `json:"color"`                         // vehicles.color
	ImagePath          string  `json:"image_path"`                    // vehicles.image_path
	ThumbnailPath      string  `json:"thumbnail_path"`                // vehicles.thumbnail_path
	ClassificationName string  `json:"classification_name,omitempty"` // joined classifications.name
}
