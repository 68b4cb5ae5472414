// internal/models/inquiry.go
package models

// Inquiry is a contact form submission from the storefront. VehicleID is
// set when the inquiry was sent from a vehicle detail page.
type Inquiry struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Message   string `bson:"message" json:"message"`
	VehicleID string `bson:"vehicleID,omitempty" json:"vehicleID,omitempty"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"`
}
