package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kvltransport/apperr"
	"kvltransport/models"
	"kvltransport/repository"

	"github.com/google/uuid"
)

// FleetHandler covers the vehicle and driver registries.
type FleetHandler struct {
	Vehicles repository.VehicleRepository
	Drivers  repository.DriverRepository
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	v.VehicleNumber = strings.ToUpper(strings.TrimSpace(v.VehicleNumber))
	if v.VehicleNumber == "" {
		writeError(w, apperr.Validation("vehicle_number is required"))
		return
	}

	existing, err := h.Vehicles.GetByNumber(v.VehicleNumber)
	if err != nil {
		writeError(w, apperr.Internal("failed to check vehicle number", err))
		return
	}
	if existing != nil {
		writeError(w, apperr.Conflict("vehicle %s already exists", v.VehicleNumber))
		return
	}

	v.ID = uuid.NewString()
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	v.CreatedAt = time.Now().UTC()

	if err := h.Vehicles.Create(&v); err != nil {
		writeError(w, apperr.Internal("failed to create vehicle", err))
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: v})
}

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	list, err := h.Vehicles.List()
	if err != nil {
		writeError(w, apperr.Internal("failed to list vehicles", err))
		return
	}
	if list == nil {
		list = []*models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request, id string) {
	v, err := h.Vehicles.GetByID(id)
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch vehicle", err))
		return
	}
	if v == nil {
		writeError(w, apperr.NotFound("vehicle not found"))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: v})
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request, id string) {
	v, err := h.Vehicles.GetByID(id)
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch vehicle", err))
		return
	}
	if v == nil {
		writeError(w, apperr.NotFound("vehicle not found"))
		return
	}

	var req models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	if req.VehicleNumber != "" {
		number := strings.ToUpper(strings.TrimSpace(req.VehicleNumber))
		if number != v.VehicleNumber {
			existing, err := h.Vehicles.GetByNumber(number)
			if err != nil {
				writeError(w, apperr.Internal("failed to check vehicle number", err))
				return
			}
			if existing != nil {
				writeError(w, apperr.Conflict("vehicle %s already exists", number))
				return
			}
			v.VehicleNumber = number
		}
	}
	if req.VehicleType != "" {
		v.VehicleType = req.VehicleType
	}
	if req.Model != "" {
		v.Model = req.Model
	}
	if req.CapacityTonnes != 0 {
		v.CapacityTonnes = req.CapacityTonnes
	}
	if req.EngineNumber != "" {
		v.EngineNumber = req.EngineNumber
	}
	if req.ChassisNumber != "" {
		v.ChassisNumber = req.ChassisNumber
	}
	if req.InsurancePolicy != "" {
		v.InsurancePolicy = req.InsurancePolicy
	}
	if req.InsuranceValidity != nil {
		v.InsuranceValidity = req.InsuranceValidity
	}
	if req.Status != "" {
		v.Status = req.Status
	}

	if err := h.Vehicles.Update(v); err != nil {
		writeError(w, apperr.Internal("failed to update vehicle", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: v})
}

type SetVehicleStatusRequest struct {
	Status string `json:"status"`
}

// SetVehicleStatus is the manual override, used for MAINTENANCE and for
// correcting stuck records. It does not consult the consignment ledger.
func (h *FleetHandler) SetVehicleStatus(w http.ResponseWriter, r *http.Request, id string) {
	v, err := h.Vehicles.GetByID(id)
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch vehicle", err))
		return
	}
	if v == nil {
		writeError(w, apperr.NotFound("vehicle not found"))
		return
	}

	var req SetVehicleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	status := models.VehicleStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch status {
	case models.VehicleAvailable, models.VehicleOnTrip, models.VehicleMaintenance:
	default:
		writeError(w, apperr.Validation("invalid vehicle status %q", req.Status))
		return
	}

	if err := h.Vehicles.SetStatus(v.ID, status); err != nil {
		writeError(w, apperr.Internal("failed to update vehicle status", err))
		return
	}
	v.Status = status
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: v})
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var d models.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	d.Mobile = strings.TrimSpace(d.Mobile)
	if d.Name == "" || d.Mobile == "" {
		writeError(w, apperr.Validation("name and mobile are required"))
		return
	}

	existing, err := h.Drivers.GetByMobile(d.Mobile)
	if err != nil {
		writeError(w, apperr.Internal("failed to check driver mobile", err))
		return
	}
	if existing != nil {
		writeError(w, apperr.Conflict("driver with mobile %s already exists", d.Mobile))
		return
	}

	d.ID = uuid.NewString()
	if d.Status == "" {
		d.Status = models.DriverAvailable
	}
	d.CurrentVehicle = nil
	d.CreatedAt = time.Now().UTC()

	if err := h.Drivers.Create(&d); err != nil {
		writeError(w, apperr.Internal("failed to create driver", err))
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: d})
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Drivers.List()
	if err != nil {
		writeError(w, apperr.Internal("failed to list drivers", err))
		return
	}
	if list == nil {
		list = []*models.Driver{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.Drivers.GetByID(id)
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch driver", err))
		return
	}
	if d == nil {
		writeError(w, apperr.NotFound("driver not found"))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: d})
}

func (h *FleetHandler) UpdateDriver(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.Drivers.GetByID(id)
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch driver", err))
		return
	}
	if d == nil {
		writeError(w, apperr.NotFound("driver not found"))
		return
	}

	var req models.Driver
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	if req.Mobile != "" {
		mobile := strings.TrimSpace(req.Mobile)
		if mobile != d.Mobile {
			existing, err := h.Drivers.GetByMobile(mobile)
			if err != nil {
				writeError(w, apperr.Internal("failed to check driver mobile", err))
				return
			}
			if existing != nil {
				writeError(w, apperr.Conflict("driver with mobile %s already exists", mobile))
				return
			}
			d.Mobile = mobile
		}
	}
	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Email != nil {
		d.Email = req.Email
	}
	if req.LicenseNumber != "" {
		d.LicenseNumber = req.LicenseNumber
	}
	if req.Address != "" {
		d.Address = req.Address
	}

	if err := h.Drivers.Update(d); err != nil {
		writeError(w, apperr.Internal("failed to update driver", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: d})
}

type SetDriverStatusRequest struct {
	Status         string  `json:"status"`
	CurrentVehicle *string `json:"current_vehicle"`
}

func (h *FleetHandler) SetDriverStatus(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.Drivers.GetByID(id)
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch driver", err))
		return
	}
	if d == nil {
		writeError(w, apperr.NotFound("driver not found"))
		return
	}

	var req SetDriverStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	status := models.DriverStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch status {
	case models.DriverAvailable, models.DriverOnTrip:
	default:
		writeError(w, apperr.Validation("invalid driver status %q", req.Status))
		return
	}

	currentVehicle := req.CurrentVehicle
	if status == models.DriverAvailable {
		currentVehicle = nil
	}

	if err := h.Drivers.SetStatus(d.ID, status, currentVehicle); err != nil {
		writeError(w, apperr.Internal("failed to update driver status", err))
		return
	}
	d.Status = status
	d.CurrentVehicle = currentVehicle
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: d})
}
