package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kvltransport/models"
)

func newTestFleetHandler() (*FleetHandler, *fakeVehicleRepo, *fakeDriverRepo) {
	vehicles := newFakeVehicleRepo()
	drivers := newFakeDriverRepo()
	h := &FleetHandler{
		Vehicles: vehicles,
		Drivers:  drivers,
	}
	return h, vehicles, drivers
}

func TestCreateVehicleDefaultsAvailable(t *testing.T) {
	h, vehicles, _ := newTestFleetHandler()

	w := httptest.NewRecorder()
	h.CreateVehicle(w, postJSON(t, models.Vehicle{VehicleNumber: "ka01ab1234", VehicleType: "TRUCK"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var stored *models.Vehicle
	for _, v := range vehicles.items {
		stored = v
	}
	if stored.VehicleNumber != "KA01AB1234" {
		t.Errorf("number = %q, want uppercased", stored.VehicleNumber)
	}
	if stored.Status != models.VehicleAvailable {
		t.Errorf("status = %s, want AVAILABLE", stored.Status)
	}
}

func TestCreateVehicleDuplicateNumber(t *testing.T) {
	h, _, _ := newTestFleetHandler()

	w := httptest.NewRecorder()
	h.CreateVehicle(w, postJSON(t, models.Vehicle{VehicleNumber: "KA01AB1234"}))
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}

	w = httptest.NewRecorder()
	h.CreateVehicle(w, postJSON(t, models.Vehicle{VehicleNumber: "ka01ab1234"}))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestSetVehicleStatusRejectsUnknown(t *testing.T) {
	h, vehicles, _ := newTestFleetHandler()
	seedVehicle(vehicles, "v1")

	w := httptest.NewRecorder()
	h.SetVehicleStatus(w, postJSON(t, SetVehicleStatusRequest{Status: "PARKED"}), "v1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	h.SetVehicleStatus(w, postJSON(t, SetVehicleStatusRequest{Status: "MAINTENANCE"}), "v1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if vehicles.items["v1"].Status != models.VehicleMaintenance {
		t.Error("vehicle not in MAINTENANCE")
	}
}

func TestCreateDriverDuplicateMobile(t *testing.T) {
	h, _, _ := newTestFleetHandler()

	w := httptest.NewRecorder()
	h.CreateDriver(w, postJSON(t, models.Driver{Name: "Ram", Mobile: "9000012345"}))
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}

	w = httptest.NewRecorder()
	h.CreateDriver(w, postJSON(t, models.Driver{Name: "Shyam", Mobile: "9000012345"}))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestSetDriverStatusAvailableClearsVehicle(t *testing.T) {
	h, _, drivers := newTestFleetHandler()
	d := seedDriver(drivers, "d1")
	vehicleID := "v1"
	drivers.SetStatus(d.ID, models.DriverOnTrip, &vehicleID)

	w := httptest.NewRecorder()
	h.SetDriverStatus(w, postJSON(t, SetDriverStatusRequest{Status: "AVAILABLE"}), "d1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	stored := drivers.items["d1"]
	if stored.Status != models.DriverAvailable {
		t.Error("driver not AVAILABLE")
	}
	if stored.CurrentVehicle != nil {
		t.Error("current vehicle not cleared")
	}
}
