package models

import "time"

type ConsignmentStatus string

const (
	StatusBooked               ConsignmentStatus = "BOOKED"
	StatusAssigned             ConsignmentStatus = "ASSIGNED"
	StatusScheduled            ConsignmentStatus = "SCHEDULED"
	StatusInTransit            ConsignmentStatus = "IN_TRANSIT"
	StatusDeliveredUnconfirmed ConsignmentStatus = "DELIVERED_UNCONFIRMED"
	StatusDelivered            ConsignmentStatus = "DELIVERED"
	StatusCancelled            ConsignmentStatus = "CANCELLED"
)

// allowedTransitions is the full lifecycle table. DELIVERED is terminal;
// CANCELLED can only be reopened back to BOOKED.
var allowedTransitions = map[ConsignmentStatus][]ConsignmentStatus{
	StatusBooked:               {StatusAssigned, StatusCancelled},
	StatusAssigned:             {StatusScheduled, StatusCancelled},
	StatusScheduled:            {StatusInTransit, StatusCancelled},
	StatusInTransit:            {StatusDeliveredUnconfirmed, StatusDelivered, StatusCancelled},
	StatusDeliveredUnconfirmed: {StatusDelivered, StatusInTransit},
	StatusDelivered:            {},
	StatusCancelled:            {StatusBooked},
}

func (s ConsignmentStatus) CanTransitionTo(next ConsignmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses that keep a vehicle/driver committed to a
// consignment. The resource-release check counts other consignments in these
// statuses before freeing a vehicle or driver.
var ActiveStatuses = []ConsignmentStatus{
	StatusAssigned, StatusScheduled, StatusInTransit, StatusDeliveredUnconfirmed,
}

const (
	GSTPayableByConsigner   = "CONSIGNER"
	GSTPayableByConsignee   = "CONSIGNEE"
	GSTPayableByTransporter = "TRANSPORTER"

	RiskOwner   = "OWNER_RISK"
	RiskCarrier = "CARRIER_RISK"

	PaymentModeToPay = "TO-PAY"
	PaymentModeTBB   = "TBB"
	PaymentModePaid  = "PAID"

	PaymentStatusUnbilled = "UNBILLED"
	PaymentStatusBilled   = "BILLED"
	PaymentStatusPaid     = "PAID"
)

// Party is the consignor/consignee block embedded in a consignment.
type Party struct {
	CustomerID string  `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	Name       string  `json:"name" bson:"name"`
	Address    string  `json:"address" bson:"address"`
	Mobile     string  `json:"mobile" bson:"mobile"`
	Email      *string `json:"email,omitempty" bson:"email,omitempty"`
	GSTNumber  *string `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
}

// VehicleSnapshot is a point-in-time copy of the assigned vehicle, including
// the compliance fields printed on chalans. It is never re-resolved from the
// live vehicle record.
type VehicleSnapshot struct {
	VehicleID         string     `json:"vehicle_id" bson:"vehicle_id"`
	VehicleNumber     string     `json:"vehicle_number" bson:"vehicle_number"`
	EngineNumber      string     `json:"engine_number,omitempty" bson:"engine_number,omitempty"`
	ChassisNumber     string     `json:"chassis_number,omitempty" bson:"chassis_number,omitempty"`
	InsurancePolicy   string     `json:"insurance_policy,omitempty" bson:"insurance_policy,omitempty"`
	InsuranceValidity *time.Time `json:"insurance_validity,omitempty" bson:"insurance_validity,omitempty"`
}

// DriverSnapshot is a point-in-time copy of the assigned driver.
type DriverSnapshot struct {
	DriverID      string `json:"driver_id" bson:"driver_id"`
	Name          string `json:"name" bson:"name"`
	Mobile        string `json:"mobile" bson:"mobile"`
	LicenseNumber string `json:"license_number,omitempty" bson:"license_number,omitempty"`
}

type Consignment struct {
	ID                string            `json:"id" bson:"_id,omitempty"`
	ConsignmentNumber string            `json:"consignment_number" bson:"consignment_number"`
	BookingDate       time.Time         `json:"booking_date" bson:"booking_date"`
	Consignor         Party             `json:"consignor" bson:"consignor"`
	Consignee         Party             `json:"consignee" bson:"consignee"`
	FromCity          string            `json:"from_city" bson:"from_city"`
	ToCity            string            `json:"to_city" bson:"to_city"`
	Packages          int               `json:"packages" bson:"packages"`
	PackageType       string            `json:"package_type,omitempty" bson:"package_type,omitempty"`
	Description       string            `json:"description,omitempty" bson:"description,omitempty"`
	ActualWeight      float64           `json:"actual_weight" bson:"actual_weight"`
	ChargedWeight     float64           `json:"charged_weight" bson:"charged_weight"`
	Value             float64           `json:"value" bson:"value"`
	Rate              float64           `json:"rate" bson:"rate"`
	Freight           float64           `json:"freight" bson:"freight"`
	Hamali            float64           `json:"hamali" bson:"hamali"`
	STCharges         float64           `json:"st_charges" bson:"st_charges"`
	DoorDelivery      float64           `json:"door_delivery" bson:"door_delivery"`
	OtherCharges      float64           `json:"other_charges" bson:"other_charges"`
	RiskCharges       float64           `json:"risk_charges" bson:"risk_charges"`
	ServiceTax        float64           `json:"service_tax" bson:"service_tax"`
	GrandTotal        float64           `json:"grand_total" bson:"grand_total"`
	GSTPayableBy      string            `json:"gst_payable_by,omitempty" bson:"gst_payable_by,omitempty"`
	Risk              string            `json:"risk,omitempty" bson:"risk,omitempty"`
	ToPay             string            `json:"to_pay,omitempty" bson:"to_pay,omitempty"`
	Vehicle           *VehicleSnapshot  `json:"vehicle,omitempty" bson:"vehicle,omitempty"`
	Driver            *DriverSnapshot   `json:"driver,omitempty" bson:"driver,omitempty"`
	Status            ConsignmentStatus `json:"status" bson:"status"`

	PickupDate           *time.Time `json:"pickup_date,omitempty" bson:"pickup_date,omitempty"`
	SpecialInstructions  string     `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
	ActualPickupDate     *time.Time `json:"actual_pickup_date,omitempty" bson:"actual_pickup_date,omitempty"`
	TransitNotes         string     `json:"transit_notes,omitempty" bson:"transit_notes,omitempty"`
	DeliveryDate         *time.Time `json:"delivery_date,omitempty" bson:"delivery_date,omitempty"`
	DeliveredBy          string     `json:"delivered_by,omitempty" bson:"delivered_by,omitempty"`
	ProofOfDelivery      string     `json:"proof_of_delivery,omitempty" bson:"proof_of_delivery,omitempty"`
	BilledIn             *string    `json:"billed_in,omitempty" bson:"billed_in,omitempty"`
	BilledDate           *time.Time `json:"billed_date,omitempty" bson:"billed_date,omitempty"`
	PaymentStatus        string     `json:"payment_status" bson:"payment_status"`
	PaymentReceiptStatus bool       `json:"payment_receipt_status" bson:"payment_receipt_status"`
	PaymentReceiptDate   *time.Time `json:"payment_receipt_date,omitempty" bson:"payment_receipt_date,omitempty"`

	IsDeleted bool       `json:"is_deleted" bson:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty" bson:"deleted_by,omitempty"`

	PdfCreatedAt *time.Time `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty"`
	PdfPath      *string    `json:"pdf_path,omitempty" bson:"pdf_path,omitempty"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// RecalculateGrandTotal sets GrandTotal to the sum of the seven charge
// fields. Called on create and on every update touching a charge field.
func (c *Consignment) RecalculateGrandTotal() {
	c.GrandTotal = c.Freight + c.Hamali + c.STCharges + c.DoorDelivery +
		c.OtherCharges + c.RiskCharges + c.ServiceTax
}

// WeightsValid reports whether the charged weight covers the actual weight.
func (c *Consignment) WeightsValid() bool {
	return c.ChargedWeight >= c.ActualWeight
}
