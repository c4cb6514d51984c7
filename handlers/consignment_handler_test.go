package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kvltransport/models"
)

func newTestConsignmentHandler() (*ConsignmentHandler, *fakeConsignmentRepo, *fakeVehicleRepo, *fakeDriverRepo) {
	cons := newFakeConsignmentRepo()
	vehicles := newFakeVehicleRepo()
	drivers := newFakeDriverRepo()
	h := &ConsignmentHandler{
		Repo:      cons,
		Vehicles:  vehicles,
		Drivers:   drivers,
		Sequences: newFakeSequenceRepo(),
	}
	return h, cons, vehicles, drivers
}

func seedVehicle(vehicles *fakeVehicleRepo, id string) *models.Vehicle {
	v := &models.Vehicle{ID: id, VehicleNumber: "KA01AB" + id, Status: models.VehicleAvailable}
	vehicles.Create(v)
	return v
}

func seedDriver(drivers *fakeDriverRepo, id string) *models.Driver {
	d := &models.Driver{ID: id, Name: "Driver " + id, Mobile: "90000" + id, Status: models.DriverAvailable}
	drivers.Create(d)
	return d
}

func seedConsignment(cons *fakeConsignmentRepo, id string, status models.ConsignmentStatus) *models.Consignment {
	c := &models.Consignment{
		ID:                id,
		ConsignmentNumber: "KVL-2026-" + strings.ToUpper(id),
		Status:            status,
		FromCity:          "Bengaluru",
		ToCity:            "Chennai",
		Consignor:         models.Party{Name: "Acme Traders", Mobile: "9876500001"},
		Consignee:         models.Party{Name: "Bolt Mills", Mobile: "9876500002"},
		ActualWeight:      100,
		ChargedWeight:     100,
		Freight:           5000,
		GrandTotal:        5000,
		PaymentStatus:     models.PaymentStatusUnbilled,
		BookingDate:       time.Now(),
	}
	cons.Create(c)
	return c
}

func postJSON(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	return httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestCreateConsignmentRejectsChargedBelowActual(t *testing.T) {
	h, _, _, _ := newTestConsignmentHandler()

	w := httptest.NewRecorder()
	h.Create(w, postJSON(t, CreateConsignmentRequest{
		Consignor:     models.Party{Name: "Acme"},
		Consignee:     models.Party{Name: "Bolt"},
		ActualWeight:  120,
		ChargedWeight: 100,
	}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "Charged weight cannot be less than actual weight" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCreateConsignmentGeneratesNumberAndTotal(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()

	w := httptest.NewRecorder()
	h.Create(w, postJSON(t, CreateConsignmentRequest{
		Consignor:     models.Party{Name: "Acme"},
		Consignee:     models.Party{Name: "Bolt"},
		ActualWeight:  100,
		ChargedWeight: 120,
		Freight:       4000,
		Hamali:        100,
		ServiceTax:    200,
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var created *models.Consignment
	for _, c := range cons.items {
		created = c
	}
	if created == nil {
		t.Fatal("consignment not stored")
	}
	if !strings.HasPrefix(created.ConsignmentNumber, "KVL-") {
		t.Errorf("number = %q, want generated KVL prefix", created.ConsignmentNumber)
	}
	if created.GrandTotal != 4300 {
		t.Errorf("grand total = %v, want 4300", created.GrandTotal)
	}
	if created.Status != models.StatusBooked {
		t.Errorf("status = %s, want BOOKED", created.Status)
	}
	if created.PaymentStatus != models.PaymentStatusUnbilled {
		t.Errorf("payment status = %s, want UNBILLED", created.PaymentStatus)
	}
}

func TestCreateConsignmentDuplicateNumberConflicts(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusBooked)

	w := httptest.NewRecorder()
	h.Create(w, postJSON(t, CreateConsignmentRequest{
		ConsignmentNumber: "kvl-2026-c1",
		Consignor:         models.Party{Name: "Acme"},
		Consignee:         models.Party{Name: "Bolt"},
	}))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestCreateConsignmentFastPathToAssigned(t *testing.T) {
	h, cons, vehicles, drivers := newTestConsignmentHandler()
	seedVehicle(vehicles, "v1")
	seedDriver(drivers, "d1")

	w := httptest.NewRecorder()
	h.Create(w, postJSON(t, CreateConsignmentRequest{
		Consignor: models.Party{Name: "Acme"},
		Consignee: models.Party{Name: "Bolt"},
		VehicleID: "v1",
		DriverID:  "d1",
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var created *models.Consignment
	for _, c := range cons.items {
		created = c
	}
	if created.Status != models.StatusAssigned {
		t.Errorf("status = %s, want ASSIGNED", created.Status)
	}
	if created.Vehicle == nil || created.Vehicle.VehicleID != "v1" {
		t.Error("vehicle snapshot missing")
	}
	if created.Driver == nil || created.Driver.DriverID != "d1" {
		t.Error("driver snapshot missing")
	}
}

func TestAssignDriverRequiresAvailability(t *testing.T) {
	h, cons, _, drivers := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusBooked)
	d := seedDriver(drivers, "d1")
	drivers.SetStatus(d.ID, models.DriverOnTrip, nil)

	w := httptest.NewRecorder()
	h.AssignDriver(w, postJSON(t, AssignDriverRequest{DriverID: "d1"}), "c1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAssignDriverMarksDriverOnTrip(t *testing.T) {
	h, cons, _, drivers := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusBooked)
	seedDriver(drivers, "d1")

	w := httptest.NewRecorder()
	h.AssignDriver(w, postJSON(t, AssignDriverRequest{DriverID: "d1"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if drivers.items["d1"].Status != models.DriverOnTrip {
		t.Error("driver not marked ON_TRIP")
	}
	if cons.items["c1"].Status != models.StatusAssigned {
		t.Error("consignment not moved to ASSIGNED")
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusBooked)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "DELIVERED"}), "c1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestProofOfDeliveryRequiredFromUnconfirmed(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusDeliveredUnconfirmed)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "DELIVERED"}), "c1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "Proof of delivery is required to confirm delivery" {
		t.Errorf("message = %q", resp.Message)
	}

	w = httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "DELIVERED", ProofOfDelivery: "signed-pod.jpg"}), "c1")
	if w.Code != http.StatusOK {
		t.Fatalf("with proof: status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if cons.items["c1"].Status != models.StatusDelivered {
		t.Error("consignment not DELIVERED")
	}
}

func TestDirectDeliveryNeedsNoProof(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusInTransit)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "DELIVERED"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	stored := cons.items["c1"]
	if stored.Status != models.StatusDelivered {
		t.Errorf("status = %s, want DELIVERED", stored.Status)
	}
	if stored.DeliveryDate == nil {
		t.Error("delivery date not stamped")
	}
}

func TestUnconfirmedDeliveryAlwaysRestamps(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	c := seedConsignment(cons, "c1", models.StatusInTransit)
	old := time.Now().Add(-24 * time.Hour).UTC()
	c.DeliveryDate = &old
	cons.Update(c)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "DELIVERED_UNCONFIRMED"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	got := cons.items["c1"].DeliveryDate
	if got == nil || got.Equal(old) {
		t.Error("delivery date must be restamped on DELIVERED_UNCONFIRMED")
	}
}

func TestDeliveryDatePreservedOnConfirm(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	c := seedConsignment(cons, "c1", models.StatusDeliveredUnconfirmed)
	stamped := time.Now().Add(-2 * time.Hour).UTC()
	c.DeliveryDate = &stamped
	cons.Update(c)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "DELIVERED", ProofOfDelivery: "pod.jpg"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	got := cons.items["c1"].DeliveryDate
	if got == nil || !got.Equal(stamped) {
		t.Errorf("delivery date = %v, want preserved %v", got, stamped)
	}
}

func TestConfirmDeliveryDefaultsToDriverName(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	c := seedConsignment(cons, "c1", models.StatusInTransit)
	c.Driver = &models.DriverSnapshot{DriverID: "d1", Name: "Ram Kumar", Mobile: "900001"}
	cons.Update(c)

	w := httptest.NewRecorder()
	h.ConfirmDelivery(w, postJSON(t, ConfirmDeliveryRequest{}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	stored := cons.items["c1"]
	if stored.Status != models.StatusDelivered {
		t.Errorf("status = %s, want DELIVERED", stored.Status)
	}
	if stored.DeliveredBy != "Ram Kumar" {
		t.Errorf("delivered_by = %q, want driver name", stored.DeliveredBy)
	}
	if stored.DeliveryDate == nil {
		t.Error("delivery date not stamped")
	}
}

func TestResourceReleaseOnlyWhenNoOtherActive(t *testing.T) {
	h, cons, vehicles, drivers := newTestConsignmentHandler()
	v := seedVehicle(vehicles, "v1")
	d := seedDriver(drivers, "d1")
	vehicles.SetStatus(v.ID, models.VehicleOnTrip)
	drivers.SetStatus(d.ID, models.DriverOnTrip, &v.ID)

	attach := func(id string, status models.ConsignmentStatus) {
		c := seedConsignment(cons, id, status)
		c.Vehicle = v.Snapshot()
		c.Driver = d.Snapshot()
		cons.Update(c)
	}
	attach("c1", models.StatusInTransit)
	attach("c2", models.StatusInTransit)

	// First delivery: c2 still holds both resources.
	w := httptest.NewRecorder()
	h.ConfirmDelivery(w, postJSON(t, ConfirmDeliveryRequest{DeliveredBy: "gate clerk"}), "c1")
	if w.Code != http.StatusOK {
		t.Fatalf("first delivery: status = %d: %s", w.Code, w.Body.String())
	}
	if vehicles.items["v1"].Status != models.VehicleOnTrip {
		t.Error("vehicle released while another consignment is active")
	}
	if drivers.items["d1"].Status != models.DriverOnTrip {
		t.Error("driver released while another consignment is active")
	}

	// Second delivery frees both.
	w = httptest.NewRecorder()
	h.ConfirmDelivery(w, postJSON(t, ConfirmDeliveryRequest{DeliveredBy: "gate clerk"}), "c2")
	if w.Code != http.StatusOK {
		t.Fatalf("second delivery: status = %d: %s", w.Code, w.Body.String())
	}
	if vehicles.items["v1"].Status != models.VehicleAvailable {
		t.Error("vehicle not released after last active consignment")
	}
	if drivers.items["d1"].Status != models.DriverAvailable {
		t.Error("driver not released after last active consignment")
	}
	if drivers.items["d1"].CurrentVehicle != nil {
		t.Error("driver current vehicle not cleared")
	}
}

func TestCancelReleasesResources(t *testing.T) {
	h, cons, vehicles, drivers := newTestConsignmentHandler()
	v := seedVehicle(vehicles, "v1")
	d := seedDriver(drivers, "d1")
	vehicles.SetStatus(v.ID, models.VehicleOnTrip)
	drivers.SetStatus(d.ID, models.DriverOnTrip, &v.ID)

	c := seedConsignment(cons, "c1", models.StatusScheduled)
	c.Vehicle = v.Snapshot()
	c.Driver = d.Snapshot()
	cons.Update(c)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "CANCELLED"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if vehicles.items["v1"].Status != models.VehicleAvailable {
		t.Error("vehicle not released on cancel")
	}
	if drivers.items["d1"].Status != models.DriverAvailable {
		t.Error("driver not released on cancel")
	}
}

func TestCancelledReopensToBooked(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusCancelled)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "BOOKED"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if cons.items["c1"].Status != models.StatusBooked {
		t.Error("cancelled consignment not reopened to BOOKED")
	}
}

func TestInTransitMarksFleetOnTrip(t *testing.T) {
	h, cons, vehicles, drivers := newTestConsignmentHandler()
	v := seedVehicle(vehicles, "v1")
	d := seedDriver(drivers, "d1")

	c := seedConsignment(cons, "c1", models.StatusScheduled)
	c.Vehicle = v.Snapshot()
	c.Driver = d.Snapshot()
	cons.Update(c)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, postJSON(t, UpdateStatusRequest{Status: "IN_TRANSIT", TransitNotes: "left depot"}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if vehicles.items["v1"].Status != models.VehicleOnTrip {
		t.Error("vehicle not marked ON_TRIP")
	}
	if drivers.items["d1"].Status != models.DriverOnTrip {
		t.Error("driver not marked ON_TRIP")
	}
	if cons.items["c1"].TransitNotes != "left depot" {
		t.Error("transit notes not stored")
	}
}

func TestSchedulePickupParsesDateAndTime(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusAssigned)

	w := httptest.NewRecorder()
	h.SchedulePickup(w, postJSON(t, SchedulePickupRequest{
		PickupDate:   "2026-09-01",
		PickupTime:   "14:30",
		Instructions: "call before arrival",
	}), "c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	stored := cons.items["c1"]
	if stored.Status != models.StatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", stored.Status)
	}
	if stored.PickupDate == nil {
		t.Fatal("pickup date not stored")
	}
	if stored.PickupDate.Hour() != 14 || stored.PickupDate.Minute() != 30 {
		t.Errorf("pickup time = %v, want 14:30", stored.PickupDate)
	}
	if stored.SpecialInstructions != "call before arrival" {
		t.Error("instructions not stored")
	}
}

func TestTrackReturnsPublicView(t *testing.T) {
	h, cons, vehicles, drivers := newTestConsignmentHandler()
	c := seedConsignment(cons, "c1", models.StatusInTransit)
	v := seedVehicle(vehicles, "v1")
	d := seedDriver(drivers, "d1")
	c.Vehicle = v.Snapshot()
	c.Driver = d.Snapshot()
	pickup := time.Now().UTC()
	c.PickupDate = &pickup
	cons.Update(c)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/track/kvl-2026-c1", nil)
	h.Track(w, r, "kvl-2026-c1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool         `json:"success"`
		Data    TrackingInfo `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Route != "Bengaluru → Chennai" {
		t.Errorf("route = %q", resp.Data.Route)
	}
	if resp.Data.EstimatedDelivery == nil {
		t.Fatal("estimated delivery missing")
	}
	if want := pickup.Add(48 * time.Hour); !resp.Data.EstimatedDelivery.Equal(want) {
		t.Errorf("eta = %v, want %v", resp.Data.EstimatedDelivery, want)
	}

	body := w.Body.String()
	if strings.Contains(body, "Acme Traders") {
		t.Error("tracking response leaks party details")
	}
	for _, leak := range []string{d.Mobile, d.Name, v.VehicleNumber, "driver", "vehicle"} {
		if strings.Contains(body, leak) {
			t.Errorf("tracking response leaks fleet details: %q", leak)
		}
	}
}

func TestSoftDeletedInvisibleToReads(t *testing.T) {
	h, cons, _, _ := newTestConsignmentHandler()
	seedConsignment(cons, "c1", models.StatusBooked)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/consignments/c1?deleted_by=ops", nil)
	h.Delete(w, r, "c1")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.GetByNumber(w, httptest.NewRequest(http.MethodGet, "/", nil), "KVL-2026-c1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted consignment still visible, status = %d", w.Code)
	}
}
