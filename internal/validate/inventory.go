package validate

import (
	"strconv"
	"strings"

	"github.com/iliyamo/dealership-inventory/internal/model"
)

// MsgClassificationMissing is attached by handlers when the submitted
// classification_id does not reference an existing classification.
const MsgClassificationMissing = "Please select a classification."

// ClassificationForm carries a new classification submission.
type ClassificationForm struct {
	Name string `json:"name" form:"name" validate:"required,classname"`
}

// Classification checks a classification name: non-empty, alphanumeric
// only.  Name uniqueness is enforced by the catalog store's unique index,
// not re-checked here.
func Classification(f *ClassificationForm) []FieldError {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return []FieldError{{Field: "name", Message: "Classification name is required."}}
	}
	return run(f, map[string]string{
		"name": "Classification name cannot contain spaces or special characters.",
	})
}

// VehicleForm carries a vehicle submission.  Year, price and miles stay
// textual until the form passes validation; Vehicle() performs the single
// coercion afterwards.  Image paths are optional and default to the
// placeholder art.
type VehicleForm struct {
	ClassificationID string `json:"classification_id" form:"classification_id" validate:"required"`
	Make             string `json:"make" form:"make" validate:"required,min=3"`
	Model            string `json:"model" form:"model" validate:"required,min=3"`
	Description      string `json:"description" form:"description" validate:"required"`
	ImagePath        string `json:"image_path" form:"image_path"`
	ThumbnailPath    string `json:"thumbnail_path" form:"thumbnail_path"`
	Price            string `json:"price" form:"price" validate:"required,vehicleprice"`
	Year             string `json:"year" form:"year" validate:"required,vehicleyear"`
	Miles            string `json:"miles" form:"miles" validate:"required,vehiclemiles"`
	Color            string `json:"color" form:"color" validate:"required"`
}

var vehicleMessages = map[string]string{
	"classification_id": MsgClassificationMissing,
	"make":              "Make must be at least 3 characters.",
	"model":             "Model must be at least 3 characters.",
	"description":       "Description is required.",
	"price":             "Price must be a valid number greater than 0.",
	"year":              "Year must be a 4-digit number between 1900 and 2099.",
	"miles":             "Miles must be a positive whole number (no commas or periods).",
	"color":             "Color is required.",
}

// Vehicle checks a vehicle submission.  Whether classification_id points
// at a real classification is the caller's store check.
func Vehicle(f *VehicleForm) []FieldError {
	f.ClassificationID = strings.TrimSpace(f.ClassificationID)
	f.Make = strings.TrimSpace(f.Make)
	f.Model = strings.TrimSpace(f.Model)
	f.Description = strings.TrimSpace(f.Description)
	f.ImagePath = strings.TrimSpace(f.ImagePath)
	f.ThumbnailPath = strings.TrimSpace(f.ThumbnailPath)
	f.Price = strings.TrimSpace(f.Price)
	f.Year = strings.TrimSpace(f.Year)
	f.Miles = strings.TrimSpace(f.Miles)
	f.Color = strings.TrimSpace(f.Color)
	return run(f, vehicleMessages)
}

// ClassificationID parses the submitted classification reference.  The
// required rule has already run, so a parse failure means a non-numeric
// submission, which callers treat like a missing classification.
func (f *VehicleForm) ClassificationIDValue() (uint64, bool) {
	id, err := strconv.ParseUint(f.ClassificationID, 10, 64)
	return id, err == nil && id > 0
}

// Vehicle coerces a validated form into a model.Vehicle.  This is the one
// place the textual numerics become numbers; validation guarantees the
// parses succeed.  Empty image paths become the placeholder defaults.
func (f *VehicleForm) Vehicle() model.Vehicle {
	classificationID, _ := strconv.ParseUint(f.ClassificationID, 10, 64)
	price, _ := strconv.ParseFloat(f.Price, 64)
	year, _ := strconv.Atoi(f.Year)
	miles, _ := strconv.ParseInt(f.Miles, 10, 64)

	image := f.ImagePath
	if image == "" {
		image = model.DefaultVehicleImage
	}
	thumb := f.ThumbnailPath
	if thumb == "" {
		thumb = model.DefaultVehicleThumbnail
	}
	return model.Vehicle{
		ClassificationID: classificationID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
		ImagePath:        image,
		ThumbnailPath:    thumb,
	}
}
