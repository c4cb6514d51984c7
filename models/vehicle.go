package models

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleOnTrip      VehicleStatus = "ON_TRIP"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	VehicleNumber     string        `json:"vehicle_number" bson:"vehicle_number"`
	VehicleType       string        `json:"vehicle_type,omitempty" bson:"vehicle_type,omitempty"` // TRUCK, VAN, TRAILER
	Model             string        `json:"model,omitempty" bson:"model,omitempty"`
	CapacityTonnes    float64       `json:"capacity_tonnes,omitempty" bson:"capacity_tonnes,omitempty"`
	EngineNumber      string        `json:"engine_number,omitempty" bson:"engine_number,omitempty"`
	ChassisNumber     string        `json:"chassis_number,omitempty" bson:"chassis_number,omitempty"`
	InsurancePolicy   string        `json:"insurance_policy,omitempty" bson:"insurance_policy,omitempty"`
	InsuranceValidity *time.Time    `json:"insurance_validity,omitempty" bson:"insurance_validity,omitempty"`
	Status            VehicleStatus `json:"status" bson:"status"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt         *time.Time    `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Snapshot copies the fields a consignment or chalan embeds at assignment
// time. Later edits to the vehicle record do not reach documents already
// carrying the snapshot.
func (v *Vehicle) Snapshot() *VehicleSnapshot {
	return &VehicleSnapshot{
		VehicleID:         v.ID,
		VehicleNumber:     v.VehicleNumber,
		EngineNumber:      v.EngineNumber,
		ChassisNumber:     v.ChassisNumber,
		InsurancePolicy:   v.InsurancePolicy,
		InsuranceValidity: v.InsuranceValidity,
	}
}
