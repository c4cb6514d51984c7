package models

import "time"

type DriverStatus string

const (
	DriverAvailable DriverStatus = "AVAILABLE"
	DriverOnTrip    DriverStatus = "ON_TRIP"
)

type Driver struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	Name          string       `json:"name" bson:"name"`
	Mobile        string       `json:"mobile" bson:"mobile"`
	Email         *string      `json:"email,omitempty" bson:"email,omitempty"`
	LicenseNumber string       `json:"license_number" bson:"license_number"`
	Address       string       `json:"address,omitempty" bson:"address,omitempty"`
	Status        DriverStatus `json:"status" bson:"status"`
	// CurrentVehicle is a lookup-only back-reference to the vehicle the
	// driver is riding with; the consignment document owns the truth of
	// the assignment.
	CurrentVehicle *string    `json:"current_vehicle,omitempty" bson:"current_vehicle,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

func (d *Driver) Snapshot() *DriverSnapshot {
	return &DriverSnapshot{
		DriverID:      d.ID,
		Name:          d.Name,
		Mobile:        d.Mobile,
		LicenseNumber: d.LicenseNumber,
	}
}
