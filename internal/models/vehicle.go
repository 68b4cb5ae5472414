// internal/models/vehicle.go
package models

// Transmission values accepted on a vehicle.
const (
	TransmissionAutomatic = "automatic"
	TransmissionManual    = "manual"
)

// Fuel type values accepted on a vehicle.
const (
	FuelPetrol   = "petrol"
	FuelDiesel   = "diesel"
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"
)

// Vehicle is a catalog entry. The `id` is the document key in MongoDB and
// the record key in the snapshot store. Timestamps are epoch milliseconds;
// CreatedAt is set once at insertion and never touched again, UpdatedAt is
// refreshed on every successful update.
type Vehicle struct {
	ID           string   `bson:"_id" json:"id"`
	Make         string   `bson:"make" json:"make"`
	Model        string   `bson:"model" json:"model"`
	Year         int      `bson:"year" json:"year"`
	Price        float64  `bson:"price" json:"price"`
	Mileage      float64  `bson:"mileage" json:"mileage"`
	Color        string   `bson:"color" json:"color"`
	Transmission string   `bson:"transmission" json:"transmission"`
	FuelType     string   `bson:"fuelType" json:"fuelType"`
	Description  string   `bson:"description" json:"description"`
	Features     []string `bson:"features" json:"features"`
	Images       []string `bson:"images" json:"images"` // first entry is the cover image
	InStock      bool     `bson:"inStock" json:"inStock"`
	CreatedAt    int64    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int64    `bson:"updatedAt" json:"updatedAt"`
}

// VehiclePatch carries a partial update. Nil fields are left untouched on
// the stored record; ID and CreatedAt are not patchable.
type VehiclePatch struct {
	Make         *string   `json:"make"`
	Model        *string   `json:"model"`
	Year         *int      `json:"year"`
	Price        *float64  `json:"price"`
	Mileage      *float64  `json:"mileage"`
	Color        *string   `json:"color"`
	Transmission *string   `json:"transmission"`
	FuelType     *string   `json:"fuelType"`
	Description  *string   `json:"description"`
	Features     *[]string `json:"features"`
	Images       *[]string `json:"images"`
	InStock      *bool     `json:"inStock"`
}

// Apply merges the patch onto v, field by field.
func (p VehiclePatch) Apply(v *Vehicle) {
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.Mileage != nil {
		v.Mileage = *p.Mileage
	}
	if p.Color != nil {
		v.Color = *p.Color
	}
	if p.Transmission != nil {
		v.Transmission = *p.Transmission
	}
	if p.FuelType != nil {
		v.FuelType = *p.FuelType
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Features != nil {
		v.Features = *p.Features
	}
	if p.Images != nil {
		v.Images = *p.Images
	}
	if p.InStock != nil {
		v.InStock = *p.InStock
	}
}
