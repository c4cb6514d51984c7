package models

import "time"

type ChalanStatus string

const (
	ChalanCreated    ChalanStatus = "CREATED"
	ChalanDispatched ChalanStatus = "DISPATCHED"
	ChalanInTransit  ChalanStatus = "IN_TRANSIT"
	ChalanArrived    ChalanStatus = "ARRIVED"
	ChalanClosed     ChalanStatus = "CLOSED"
)

var chalanOrder = map[ChalanStatus]int{
	ChalanCreated:    0,
	ChalanDispatched: 1,
	ChalanInTransit:  2,
	ChalanArrived:    3,
	ChalanClosed:     4,
}

// CanTransitionTo is strictly forward-only; there is no cancellation path
// for a chalan.
func (s ChalanStatus) CanTransitionTo(next ChalanStatus) bool {
	from, ok := chalanOrder[s]
	if !ok {
		return false
	}
	to, ok := chalanOrder[next]
	if !ok {
		return false
	}
	return to > from
}

// ChalanLineItem snapshots one consignment loaded on the trip.
type ChalanLineItem struct {
	ConsignmentID     string  `json:"consignment_id" bson:"consignment_id"`
	ConsignmentNumber string  `json:"consignment_number" bson:"consignment_number"`
	Packages          int     `json:"packages" bson:"packages"`
	PackageType       string  `json:"package_type,omitempty" bson:"package_type,omitempty"`
	Description       string  `json:"description,omitempty" bson:"description,omitempty"`
	Weight            float64 `json:"weight" bson:"weight"`
	Freight           float64 `json:"freight" bson:"freight"`
	ToCity            string  `json:"to_city" bson:"to_city"`
}

type LoadChalan struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	ChalanNumber string           `json:"chalan_number" bson:"chalan_number"`
	ChalanDate   time.Time        `json:"chalan_date" bson:"chalan_date"`
	FromCity     string           `json:"from_city" bson:"from_city"`
	ToCity       string           `json:"to_city" bson:"to_city"`
	Vehicle      VehicleSnapshot  `json:"vehicle" bson:"vehicle"`
	Driver       DriverSnapshot   `json:"driver" bson:"driver"`
	Consignments []ChalanLineItem `json:"consignments" bson:"consignments"`

	TotalLRCount  int     `json:"total_lr_count" bson:"total_lr_count"`
	TotalPackages int     `json:"total_packages" bson:"total_packages"`
	TotalWeight   float64 `json:"total_weight" bson:"total_weight"`
	TotalFreight  float64 `json:"total_freight" bson:"total_freight"`

	AdvancePaid    float64 `json:"advance_paid" bson:"advance_paid"`
	TDSDeduction   float64 `json:"tds_deduction" bson:"tds_deduction"`
	BalanceFreight float64 `json:"balance_freight" bson:"balance_freight"`

	Status       ChalanStatus `json:"status" bson:"status"`
	Remarks      string       `json:"remarks,omitempty" bson:"remarks,omitempty"`
	PdfCreatedAt *time.Time   `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty"`
	PdfPath      *string      `json:"pdf_path,omitempty" bson:"pdf_path,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// RecalculateTotals derives the truck-level settlement figures from the line
// items. Runs before every persist so the stored totals never drift from
// the lines.
func (ch *LoadChalan) RecalculateTotals() {
	ch.TotalLRCount = len(ch.Consignments)
	ch.TotalPackages = 0
	ch.TotalWeight = 0
	ch.TotalFreight = 0
	for _, line := range ch.Consignments {
		ch.TotalPackages += line.Packages
		ch.TotalWeight += line.Weight
		ch.TotalFreight += line.Freight
	}
	ch.BalanceFreight = ch.TotalFreight - ch.AdvancePaid - ch.TDSDeduction
}
