package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"kvltransport/apperr"
	"kvltransport/models"
	"kvltransport/notify"
	"kvltransport/repository"

	"github.com/google/uuid"
)

// ConsignmentHandler owns the shipment lifecycle: booking, fleet
// assignment, scheduling, transit, delivery and cancellation, plus the
// resource-release bookkeeping on the fleet registry.
type ConsignmentHandler struct {
	Repo      repository.ConsignmentRepository
	Vehicles  repository.VehicleRepository
	Drivers   repository.DriverRepository
	Sequences repository.SequenceRepository
	Notifier  notify.Sender
}

type CreateConsignmentRequest struct {
	ConsignmentNumber string       `json:"consignment_number"`
	BookingDate       *time.Time   `json:"booking_date"`
	Consignor         models.Party `json:"consignor"`
	Consignee         models.Party `json:"consignee"`
	FromCity          string       `json:"from_city"`
	ToCity            string       `json:"to_city"`
	Packages          int          `json:"packages"`
	PackageType       string       `json:"package_type"`
	Description       string       `json:"description"`
	ActualWeight      float64      `json:"actual_weight"`
	ChargedWeight     float64      `json:"charged_weight"`
	Value             float64      `json:"value"`
	Rate              float64      `json:"rate"`
	Freight           float64      `json:"freight"`
	Hamali            float64      `json:"hamali"`
	STCharges         float64      `json:"st_charges"`
	DoorDelivery      float64      `json:"door_delivery"`
	OtherCharges      float64      `json:"other_charges"`
	RiskCharges       float64      `json:"risk_charges"`
	ServiceTax        float64      `json:"service_tax"`
	GSTPayableBy      string       `json:"gst_payable_by"`
	Risk              string       `json:"risk"`
	ToPay             string       `json:"to_pay"`
	VehicleID         string       `json:"vehicle_id"`
	DriverID          string       `json:"driver_id"`
}

// Create books a consignment. When both a vehicle and a driver id are
// supplied and resolve, the booking starts at ASSIGNED with their snapshots
// embedded; this fast path deliberately skips the availability and
// allowed-status checks of the explicit assignment operation.
func (h *ConsignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateConsignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	c := &models.Consignment{
		ID:            uuid.NewString(),
		Consignor:     req.Consignor,
		Consignee:     req.Consignee,
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		Packages:      req.Packages,
		PackageType:   req.PackageType,
		Description:   req.Description,
		ActualWeight:  req.ActualWeight,
		ChargedWeight: req.ChargedWeight,
		Value:         req.Value,
		Rate:          req.Rate,
		Freight:       req.Freight,
		Hamali:        req.Hamali,
		STCharges:     req.STCharges,
		DoorDelivery:  req.DoorDelivery,
		OtherCharges:  req.OtherCharges,
		RiskCharges:   req.RiskCharges,
		ServiceTax:    req.ServiceTax,
		GSTPayableBy:  req.GSTPayableBy,
		Risk:          req.Risk,
		ToPay:         req.ToPay,
		Status:        models.StatusBooked,
		PaymentStatus: models.PaymentStatusUnbilled,
		BookingDate:   time.Now().UTC(),
	}
	if req.BookingDate != nil {
		c.BookingDate = *req.BookingDate
	}

	if !c.WeightsValid() {
		writeError(w, apperr.Validation("Charged weight cannot be less than actual weight"))
		return
	}
	c.RecalculateGrandTotal()

	number, err := h.resolveConsignmentNumber(req.ConsignmentNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	c.ConsignmentNumber = number

	if req.VehicleID != "" && req.DriverID != "" {
		vehicle, err := h.Vehicles.GetByID(req.VehicleID)
		if err != nil {
			writeError(w, apperr.Internal("failed to look up vehicle", err))
			return
		}
		driver, err := h.Drivers.GetByID(req.DriverID)
		if err != nil {
			writeError(w, apperr.Internal("failed to look up driver", err))
			return
		}
		if vehicle != nil && driver != nil {
			c.Vehicle = vehicle.Snapshot()
			c.Driver = driver.Snapshot()
			c.Status = models.StatusAssigned
		}
	}

	if err := h.Repo.Create(c); err != nil {
		writeError(w, apperr.Internal("failed to create consignment", err))
		return
	}

	if c.Consignor.Email != nil && *c.Consignor.Email != "" {
		h.sendMail(*c.Consignor.Email,
			"Booking confirmed: "+c.ConsignmentNumber,
			fmt.Sprintf("Your consignment %s from %s to %s has been booked.",
				c.ConsignmentNumber, c.FromCity, c.ToCity))
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: c})
}

func (h *ConsignmentHandler) resolveConsignmentNumber(requested string) (string, error) {
	if requested != "" {
		number := strings.ToUpper(strings.TrimSpace(requested))
		existing, err := h.Repo.GetByNumber(number)
		if err != nil {
			return "", apperr.Internal("failed to check consignment number", err)
		}
		if existing != nil {
			return "", apperr.Conflict("consignment number %s already exists", number)
		}
		return number, nil
	}

	year := time.Now().Year()
	seq, err := h.Sequences.Next(repository.SequenceConsignment, year)
	if err != nil {
		return "", apperr.Internal("failed to generate consignment number", err)
	}
	return fmt.Sprintf("KVL-%d-%06d", year, seq), nil
}

// List returns non-deleted consignments, filterable by status and fleet
// assignment via query parameters.
func (h *ConsignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		filters["status"] = v
	}
	if v := q.Get("vehicle_id"); v != "" {
		filters["vehicle.vehicle_id"] = v
	}
	if v := q.Get("driver_id"); v != "" {
		filters["driver.driver_id"] = v
	}
	if q.Get("deleted") == "true" {
		filters["is_deleted"] = true
	}

	list, err := h.Repo.List(filters)
	if err != nil {
		writeError(w, apperr.Internal("failed to list consignments", err))
		return
	}
	if list == nil {
		list = []*models.Consignment{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// GetByNumber looks a consignment up by its business key, normalized
// uppercase.
func (h *ConsignmentHandler) GetByNumber(w http.ResponseWriter, r *http.Request, number string) {
	c, err := h.Repo.GetByNumber(strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch consignment", err))
		return
	}
	if c == nil {
		writeError(w, apperr.NotFound("consignment not found"))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

type UpdateConsignmentRequest struct {
	Consignor     *models.Party `json:"consignor"`
	Consignee     *models.Party `json:"consignee"`
	FromCity      *string       `json:"from_city"`
	ToCity        *string       `json:"to_city"`
	Packages      *int          `json:"packages"`
	PackageType   *string       `json:"package_type"`
	Description   *string       `json:"description"`
	ActualWeight  *float64      `json:"actual_weight"`
	ChargedWeight *float64      `json:"charged_weight"`
	Value         *float64      `json:"value"`
	Rate          *float64      `json:"rate"`
	Freight       *float64      `json:"freight"`
	Hamali        *float64      `json:"hamali"`
	STCharges     *float64      `json:"st_charges"`
	DoorDelivery  *float64      `json:"door_delivery"`
	OtherCharges  *float64      `json:"other_charges"`
	RiskCharges   *float64      `json:"risk_charges"`
	ServiceTax    *float64      `json:"service_tax"`
	GSTPayableBy  *string       `json:"gst_payable_by"`
	Risk          *string       `json:"risk"`
	ToPay         *string       `json:"to_pay"`
}

// Update applies booking-field edits. The weight invariant is re-checked
// whenever either weight changes, and the grand total is recomputed when
// any charge field changes.
func (h *ConsignmentHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateConsignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	if req.Consignor != nil {
		c.Consignor = *req.Consignor
	}
	if req.Consignee != nil {
		c.Consignee = *req.Consignee
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&c.FromCity, req.FromCity)
	setString(&c.ToCity, req.ToCity)
	setString(&c.PackageType, req.PackageType)
	setString(&c.Description, req.Description)
	setString(&c.GSTPayableBy, req.GSTPayableBy)
	setString(&c.Risk, req.Risk)
	setString(&c.ToPay, req.ToPay)
	if req.Packages != nil {
		c.Packages = *req.Packages
	}
	if req.ActualWeight != nil {
		c.ActualWeight = *req.ActualWeight
	}
	if req.ChargedWeight != nil {
		c.ChargedWeight = *req.ChargedWeight
	}
	if req.Value != nil {
		c.Value = *req.Value
	}
	if req.Rate != nil {
		c.Rate = *req.Rate
	}

	chargesTouched := false
	setCharge := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
			chargesTouched = true
		}
	}
	setCharge(&c.Freight, req.Freight)
	setCharge(&c.Hamali, req.Hamali)
	setCharge(&c.STCharges, req.STCharges)
	setCharge(&c.DoorDelivery, req.DoorDelivery)
	setCharge(&c.OtherCharges, req.OtherCharges)
	setCharge(&c.RiskCharges, req.RiskCharges)
	setCharge(&c.ServiceTax, req.ServiceTax)

	if !c.WeightsValid() {
		writeError(w, apperr.Validation("Charged weight cannot be less than actual weight"))
		return
	}
	if chargesTouched {
		c.RecalculateGrandTotal()
	}

	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update consignment", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

// Delete soft-deletes; the document stays queryable with deleted=true.
func (h *ConsignmentHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}
	deletedBy := r.URL.Query().Get("deleted_by")
	if err := h.Repo.SoftDelete(c.ID, deletedBy); err != nil {
		writeError(w, apperr.Internal("failed to delete consignment", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Consignment deleted successfully"})
}

type AssignVehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

// AssignVehicle pairs a vehicle and driver with the consignment. Allowed
// from BOOKED and also from ASSIGNED, which permits a swap. Availability is
// not checked on this path.
func (h *ConsignmentHandler) AssignVehicle(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if c.Status != models.StatusBooked && c.Status != models.StatusAssigned {
		writeError(w, apperr.InvalidState("cannot assign vehicle while consignment is %s", c.Status))
		return
	}

	var req AssignVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	vehicle, err := h.Vehicles.GetByID(req.VehicleID)
	if err != nil {
		writeError(w, apperr.Internal("failed to look up vehicle", err))
		return
	}
	if vehicle == nil {
		writeError(w, apperr.NotFound("vehicle not found"))
		return
	}

	driver, err := h.Drivers.GetByID(req.DriverID)
	if err != nil {
		writeError(w, apperr.Internal("failed to look up driver", err))
		return
	}
	if driver == nil {
		writeError(w, apperr.NotFound("driver not found"))
		return
	}

	c.Vehicle = vehicle.Snapshot()
	c.Driver = driver.Snapshot()
	c.Status = models.StatusAssigned

	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update consignment", err))
		return
	}
	// The vehicle and driver documents are re-saved on this path even
	// though no field on them changed.
	if err := h.Vehicles.Update(vehicle); err != nil {
		writeError(w, apperr.Internal("failed to save vehicle", err))
		return
	}
	if err := h.Drivers.Update(driver); err != nil {
		writeError(w, apperr.Internal("failed to save driver", err))
		return
	}

	if c.Consignor.Email != nil && *c.Consignor.Email != "" {
		h.sendMail(*c.Consignor.Email,
			"Vehicle assigned: "+c.ConsignmentNumber,
			fmt.Sprintf("Vehicle %s has been assigned to consignment %s.",
				vehicle.VehicleNumber, c.ConsignmentNumber))
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// AssignDriver attaches only a driver. Unlike AssignVehicle this path is
// restricted to BOOKED and requires the driver to be AVAILABLE.
func (h *ConsignmentHandler) AssignDriver(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if c.Status != models.StatusBooked {
		writeError(w, apperr.InvalidState("cannot assign driver while consignment is %s", c.Status))
		return
	}

	var req AssignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	driver, err := h.Drivers.GetByID(req.DriverID)
	if err != nil {
		writeError(w, apperr.Internal("failed to look up driver", err))
		return
	}
	if driver == nil {
		writeError(w, apperr.NotFound("driver not found"))
		return
	}
	if driver.Status != models.DriverAvailable {
		writeError(w, apperr.NotAvailable("driver %s is not available", driver.Name))
		return
	}

	var currentVehicle *string
	if c.Vehicle != nil {
		currentVehicle = &c.Vehicle.VehicleID
	}
	if err := h.Drivers.SetStatus(driver.ID, models.DriverOnTrip, currentVehicle); err != nil {
		writeError(w, apperr.Internal("failed to update driver status", err))
		return
	}

	c.Driver = driver.Snapshot()
	c.Status = models.StatusAssigned
	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update consignment", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

type SchedulePickupRequest struct {
	PickupDate   string `json:"pickup_date"`
	PickupTime   string `json:"pickup_time"`
	Instructions string `json:"instructions"`
}

func (h *ConsignmentHandler) SchedulePickup(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if c.Status != models.StatusAssigned {
		writeError(w, apperr.InvalidState("cannot schedule pickup while consignment is %s", c.Status))
		return
	}

	var req SchedulePickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	pickupAt, err := parseDateTime(req.PickupDate, req.PickupTime)
	if err != nil {
		writeError(w, apperr.Validation("invalid pickup date/time: %v", err))
		return
	}

	c.PickupDate = &pickupAt
	c.SpecialInstructions = req.Instructions
	c.Status = models.StatusScheduled

	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update consignment", err))
		return
	}

	if c.Consignor.Email != nil && *c.Consignor.Email != "" {
		body := fmt.Sprintf("Pickup for consignment %s is scheduled on %s.",
			c.ConsignmentNumber, pickupAt.Format("02-Jan-2006 15:04"))
		if c.Driver != nil {
			body += fmt.Sprintf(" Driver %s (%s) will collect the shipment.", c.Driver.Name, c.Driver.Mobile)
		}
		h.sendMail(*c.Consignor.Email, "Pickup scheduled: "+c.ConsignmentNumber, body)
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

type UpdateStatusRequest struct {
	Status           string `json:"status"`
	ActualPickupDate string `json:"actual_pickup_date"`
	ActualPickupTime string `json:"actual_pickup_time"`
	TransitNotes     string `json:"transit_notes"`
	ProofOfDelivery  string `json:"proof_of_delivery"`
	DeliveredBy      string `json:"delivered_by"`
}

// UpdateStatus is the general transition entry point for IN_TRANSIT,
// DELIVERED_UNCONFIRMED, DELIVERED and CANCELLED.
func (h *ConsignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	next := models.ConsignmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !c.Status.CanTransitionTo(next) {
		writeError(w, apperr.InvalidTransition("cannot transition from %s to %s", c.Status, next))
		return
	}

	previous := c.Status
	now := time.Now().UTC()

	switch next {
	case models.StatusInTransit:
		if req.ActualPickupDate != "" {
			pickedUpAt, err := parseDateTime(req.ActualPickupDate, req.ActualPickupTime)
			if err != nil {
				writeError(w, apperr.Validation("invalid actual pickup date/time: %v", err))
				return
			}
			c.ActualPickupDate = &pickedUpAt
		}
		if req.TransitNotes != "" {
			c.TransitNotes = req.TransitNotes
		}

	case models.StatusDeliveredUnconfirmed:
		// Always restamped, even when already set.
		c.DeliveryDate = &now

	case models.StatusDelivered:
		if previous == models.StatusDeliveredUnconfirmed && req.ProofOfDelivery == "" {
			writeError(w, apperr.Validation("Proof of delivery is required to confirm delivery"))
			return
		}
		if req.ProofOfDelivery != "" {
			c.ProofOfDelivery = req.ProofOfDelivery
		}
		if req.DeliveredBy != "" {
			c.DeliveredBy = req.DeliveredBy
		}
		if c.DeliveryDate == nil {
			c.DeliveryDate = &now
		}

	case models.StatusCancelled:
		// Resource release only; no field changes.
	}

	c.Status = next
	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update consignment", err))
		return
	}

	switch next {
	case models.StatusInTransit:
		h.markResourcesOnTrip(c)
	case models.StatusDelivered, models.StatusCancelled:
		h.releaseResources(c)
	}

	if next == models.StatusDelivered && c.Consignor.Email != nil && *c.Consignor.Email != "" {
		h.sendMail(*c.Consignor.Email,
			"Delivered: "+c.ConsignmentNumber,
			fmt.Sprintf("Consignment %s has been delivered at %s.", c.ConsignmentNumber, c.ToCity))
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

type ConfirmDeliveryRequest struct {
	DeliveredBy     string `json:"delivered_by"`
	ProofOfDelivery string `json:"proof_of_delivery"`
}

// ConfirmDelivery is the narrow convenience path straight from IN_TRANSIT.
func (h *ConsignmentHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadConsignment(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if c.Status != models.StatusInTransit {
		writeError(w, apperr.InvalidState("cannot confirm delivery while consignment is %s", c.Status))
		return
	}

	var req ConfirmDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	now := time.Now().UTC()
	c.DeliveryDate = &now
	c.Status = models.StatusDelivered
	c.DeliveredBy = req.DeliveredBy
	if c.DeliveredBy == "" && c.Driver != nil {
		c.DeliveredBy = c.Driver.Name
	}
	if req.ProofOfDelivery != "" {
		c.ProofOfDelivery = req.ProofOfDelivery
	}

	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update consignment", err))
		return
	}

	h.releaseResources(c)

	if c.Consignor.Email != nil && *c.Consignor.Email != "" {
		h.sendMail(*c.Consignor.Email,
			"Delivered: "+c.ConsignmentNumber,
			fmt.Sprintf("Consignment %s has been delivered at %s.", c.ConsignmentNumber, c.ToCity))
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

// markResourcesOnTrip flags the assigned vehicle and driver as committed
// when the shipment starts moving.
func (h *ConsignmentHandler) markResourcesOnTrip(c *models.Consignment) {
	if c.Vehicle != nil {
		if err := h.Vehicles.SetStatus(c.Vehicle.VehicleID, models.VehicleOnTrip); err != nil {
			log.Printf("failed to mark vehicle %s on trip: %v", c.Vehicle.VehicleID, err)
		}
	}
	if c.Driver != nil {
		var currentVehicle *string
		if c.Vehicle != nil {
			currentVehicle = &c.Vehicle.VehicleID
		}
		if err := h.Drivers.SetStatus(c.Driver.DriverID, models.DriverOnTrip, currentVehicle); err != nil {
			log.Printf("failed to mark driver %s on trip: %v", c.Driver.DriverID, err)
		}
	}
}

// releaseResources frees the vehicle and driver only when no other active
// consignment still holds them. The count is taken fresh on every call so
// a resource shared across shipments is never released early.
func (h *ConsignmentHandler) releaseResources(c *models.Consignment) {
	if c.Vehicle != nil {
		active, err := h.Repo.CountActiveForVehicle(c.Vehicle.VehicleID, c.ID)
		if err != nil {
			log.Printf("failed to count active consignments for vehicle %s: %v", c.Vehicle.VehicleID, err)
		} else if active == 0 {
			if err := h.Vehicles.SetStatus(c.Vehicle.VehicleID, models.VehicleAvailable); err != nil {
				log.Printf("failed to release vehicle %s: %v", c.Vehicle.VehicleID, err)
			}
		}
	}
	if c.Driver != nil {
		active, err := h.Repo.CountActiveForDriver(c.Driver.DriverID, c.ID)
		if err != nil {
			log.Printf("failed to count active consignments for driver %s: %v", c.Driver.DriverID, err)
		} else if active == 0 {
			if err := h.Drivers.SetStatus(c.Driver.DriverID, models.DriverAvailable, nil); err != nil {
				log.Printf("failed to release driver %s: %v", c.Driver.DriverID, err)
			}
		}
	}
}

func (h *ConsignmentHandler) loadConsignment(id string) (*models.Consignment, error) {
	c, err := h.Repo.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to fetch consignment", err)
	}
	if c == nil {
		return nil, apperr.NotFound("consignment not found")
	}
	return c, nil
}

func (h *ConsignmentHandler) sendMail(to, subject, body string) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Send(to, subject, body); err != nil {
		log.Printf("failed to send notification to %s: %v", to, err)
	}
}

// parseDateTime accepts a full RFC3339 timestamp in date, or a separate
// date (2006-01-02) and time (15:04 or 15:04:05) pair.
func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t.UTC(), nil
	}
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
	}
	if timeStr == "" {
		return day.UTC(), nil
	}
	layouts := []string{"15:04", "15:04:05"}
	for _, layout := range layouts {
		if clock, err := time.Parse(layout, timeStr); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", timeStr)
}
