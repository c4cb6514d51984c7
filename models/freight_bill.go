package models

import (
	"math"
	"time"
)

type BillStatus string

const (
	BillDraft         BillStatus = "DRAFT"
	BillGenerated     BillStatus = "GENERATED"
	BillSent          BillStatus = "SENT"
	BillPartiallyPaid BillStatus = "PARTIALLY_PAID"
	BillPaid          BillStatus = "PAID"
	BillCancelled     BillStatus = "CANCELLED"
)

// billOrder gives each forward status a rank; CANCELLED sits outside the
// chain and is reachable from any non-terminal state.
var billOrder = map[BillStatus]int{
	BillDraft:         0,
	BillGenerated:     1,
	BillSent:          2,
	BillPartiallyPaid: 3,
	BillPaid:          4,
}

// CanTransitionTo enforces forward-only progression. PAID and CANCELLED are
// terminal, with the one concession that re-asserting the current terminal
// status is accepted as a no-op.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	if s == BillPaid || s == BillCancelled {
		return next == s
	}
	if next == BillCancelled {
		return true
	}
	from, ok := billOrder[s]
	if !ok {
		return false
	}
	to, ok := billOrder[next]
	if !ok {
		return false
	}
	return to > from
}

const (
	AdjustmentDiscount      = "DISCOUNT"
	AdjustmentExtraCharge   = "EXTRA_CHARGE"
	AdjustmentFuelSurcharge = "FUEL_SURCHARGE"
	AdjustmentOther         = "OTHER"
)

type BillAdjustment struct {
	Type        string  `json:"type" bson:"type"`
	Description string  `json:"description" bson:"description"`
	Amount      float64 `json:"amount" bson:"amount"`
}

// BillParty is the billed customer frozen at bill-creation time.
type BillParty struct {
	CustomerID string  `json:"customer_id" bson:"customer_id"`
	Name       string  `json:"name" bson:"name"`
	Address    string  `json:"address" bson:"address"`
	GSTNumber  *string `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
}

// BillLineItem snapshots one delivered consignment. Later edits to the
// source consignment do not propagate.
type BillLineItem struct {
	ConsignmentID     string    `json:"consignment_id" bson:"consignment_id"`
	ConsignmentNumber string    `json:"consignment_number" bson:"consignment_number"`
	BookingDate       time.Time `json:"booking_date" bson:"booking_date"`
	ToCity            string    `json:"to_city" bson:"to_city"`
	ChargedWeight     float64   `json:"charged_weight" bson:"charged_weight"`
	Rate              float64   `json:"rate" bson:"rate"`
	Freight           float64   `json:"freight" bson:"freight"`
	Hamali            float64   `json:"hamali" bson:"hamali"`
	STCharges         float64   `json:"st_charges" bson:"st_charges"`
	DoorDelivery      float64   `json:"door_delivery" bson:"door_delivery"`
	OtherCharges      float64   `json:"other_charges" bson:"other_charges"`
	GrandTotal        float64   `json:"grand_total" bson:"grand_total"`
}

type FreightBill struct {
	ID            string           `json:"id" bson:"_id,omitempty"`
	BillNumber    string           `json:"bill_number" bson:"bill_number"`
	BillDate      time.Time        `json:"bill_date" bson:"bill_date"`
	BillingBranch string           `json:"billing_branch,omitempty" bson:"billing_branch,omitempty"`
	Party         BillParty        `json:"party" bson:"party"`
	Consignments  []BillLineItem   `json:"consignments" bson:"consignments"`
	TotalAmount   float64          `json:"total_amount" bson:"total_amount"`
	Adjustments   []BillAdjustment `json:"adjustments,omitempty" bson:"adjustments,omitempty"`
	FinalAmount   float64          `json:"final_amount" bson:"final_amount"`
	Status        BillStatus       `json:"status" bson:"status"`
	IsDeleted     bool             `json:"is_deleted" bson:"is_deleted"`
	DeletedAt     *time.Time       `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	PdfCreatedAt  *time.Time       `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty"`
	PdfPath       *string          `json:"pdf_path,omitempty" bson:"pdf_path,omitempty"`
	CreatedAt     time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// RecalculateTotals sums the line items and applies adjustments. DISCOUNT
// subtracts (absolute value), every other type adds. FinalAmount never goes
// below zero.
func (b *FreightBill) RecalculateTotals() {
	total := 0.0
	for _, line := range b.Consignments {
		total += line.GrandTotal
	}
	b.TotalAmount = total

	final := total
	for _, adj := range b.Adjustments {
		if adj.Type == AdjustmentDiscount {
			final -= math.Abs(adj.Amount)
		} else {
			final += adj.Amount
		}
	}
	if final < 0 {
		final = 0
	}
	b.FinalAmount = final
}

// FilterAdjustments drops entries missing a type, description, or a
// non-zero amount.
func FilterAdjustments(in []BillAdjustment) []BillAdjustment {
	out := make([]BillAdjustment, 0, len(in))
	for _, adj := range in {
		if adj.Type == "" || adj.Description == "" || adj.Amount == 0 {
			continue
		}
		out = append(out, adj)
	}
	return out
}
