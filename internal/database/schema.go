// internal/database/schema.go
package database

import (
	"time"

	"prestige-motors-api-server/internal/models"
)

// Structured store layout. Bumping SchemaVersion makes the opener
// re-ensure collections and indexes on the next start; existing documents
// are left in place.
const (
	SchemaVersion = 2

	CollVehicles  = "vehicles"
	CollUsers     = "users"
	CollInquiries = "inquiries"

	collSchemaInfo = "schema_info"
	schemaInfoKey  = "schema"
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// DemoVehicles is the fixed dataset a fresh catalog is seeded with. The
// newest entry is stamped with now, the others one and two days earlier so
// the listing order is visible out of the box.
func DemoVehicles(now int64) []models.Vehicle {
	return []models.Vehicle{
		{
			ID:           "1",
			Make:         "BMW",
			Model:        "X5",
			Year:         2023,
			Price:        65000,
			Mileage:      1500,
			Color:        "Black",
			Transmission: models.TransmissionAutomatic,
			FuelType:     models.FuelPetrol,
			Description:  "Luxurious BMW X5 with premium features and excellent condition.",
			Features:     []string{"Leather Seats", "Panoramic Roof", "360 Camera", "Navigation", "Heated Seats"},
			Images: []string{
				"https://images.unsplash.com/photo-1556189250-72ba954cfc2b?q=80&w=3270&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1556800572-1b8aedf82198?q=80&w=3270&auto=format&fit=crop",
			},
			InStock:   true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           "2",
			Make:         "Mercedes-Benz",
			Model:        "E-Class",
			Year:         2022,
			Price:        58000,
			Mileage:      5000,
			Color:        "Silver",
			Transmission: models.TransmissionAutomatic,
			FuelType:     models.FuelDiesel,
			Description:  "Elegant Mercedes-Benz E-Class with advanced features and comfort.",
			Features:     []string{"Premium Sound System", "Lane Assist", "Leather Seats", "Heated Steering Wheel"},
			Images: []string{
				"https://images.unsplash.com/photo-1550355291-bbee04a92027?q=80&w=3336&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1551634979-2b11f8c946fe?q=80&w=3270&auto=format&fit=crop",
			},
			InStock:   true,
			CreatedAt: now - millisPerDay,
			UpdatedAt: now - millisPerDay,
		},
		{
			ID:           "3",
			Make:         "Audi",
			Model:        "Q7",
			Year:         2023,
			Price:        72000,
			Mileage:      2000,
			Color:        "White",
			Transmission: models.TransmissionAutomatic,
			FuelType:     models.FuelHybrid,
			Description:  "Powerful Audi Q7 with spacious interior and cutting-edge technology.",
			Features:     []string{"7 Seats", "Matrix LED Lights", "Virtual Cockpit", "Bang & Olufsen Sound"},
			Images: []string{
				"https://images.unsplash.com/photo-1541348263662-e068662d82af?q=80&w=3271&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1522932467653-e48f79727abf?q=80&w=2850&auto=format&fit=crop",
			},
			InStock:   true,
			CreatedAt: now - 2*millisPerDay,
			UpdatedAt: now - 2*millisPerDay,
		},
	}
}

// DemoUsers is the bootstrap credential set: a single admin account.
func DemoUsers() []models.User {
	return []models.User{
		{
			Username: "admin",
			// Stored as-is. Plain-text credentials are a known gap of this
			// system, there is no signup or password-change path.
			Password: "admin123",
			IsAdmin:  true,
		},
	}
}
