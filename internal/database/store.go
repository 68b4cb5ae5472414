// internal/database/store.go
package database

import (
	"context"
	"errors"

	"prestige-motors-api-server/internal/models"
)

// ErrNotFound is the only domain error the stores surface; everything else
// is an infrastructure failure the repository absorbs.
var ErrNotFound = errors.New("record not found")

// StructuredStore is the capability both catalog backends implement: the
// MongoDB store and, degraded, the snapshot store. The repository depends
// only on this interface and picks a backend per call.
type StructuredStore interface {
	Vehicles(ctx context.Context) ([]models.Vehicle, error)
	VehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	// SaveVehicle inserts or fully replaces the vehicle keyed by its ID.
	SaveVehicle(ctx context.Context, v models.Vehicle) error
	// DeleteVehicle reports whether a vehicle with that ID existed.
	DeleteVehicle(ctx context.Context, id string) (bool, error)
	Users(ctx context.Context) ([]models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

// InquiryStore persists contact inquiries. Only the structured store
// implements it; inquiries are not part of the mirrored catalog pair.
type InquiryStore interface {
	InsertInquiry(ctx context.Context, inq models.Inquiry) error
}
