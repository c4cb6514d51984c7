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

// ChalanHandler manages load chalans, the truck-level trip sheets grouping
// consignments loaded together.
type ChalanHandler struct {
	Chalans      repository.ChalanRepository
	Consignments repository.ConsignmentRepository
	Vehicles     repository.VehicleRepository
	Drivers      repository.DriverRepository
}

type CreateChalanRequest struct {
	ChalanNumber   string     `json:"chalan_number"`
	ChalanDate     *time.Time `json:"chalan_date"`
	FromCity       string     `json:"from_city"`
	ToCity         string     `json:"to_city"`
	VehicleID      string     `json:"vehicle_id"`
	DriverID       string     `json:"driver_id"`
	ConsignmentIDs []string   `json:"consignment_ids"`
	AdvancePaid    float64    `json:"advance_paid"`
	TDSDeduction   float64    `json:"tds_deduction"`
	Remarks        string     `json:"remarks"`
}

// Create builds a chalan from the given consignments, snapshotting each one
// as a line item and the vehicle and driver onto the trip sheet. Totals are
// derived, never taken from the request.
func (h *ChalanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateChalanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}
	if req.ChalanNumber == "" {
		writeError(w, apperr.Validation("chalan_number is required"))
		return
	}
	if len(req.ConsignmentIDs) == 0 {
		writeError(w, apperr.Validation("consignment_ids is required"))
		return
	}

	number := strings.ToUpper(strings.TrimSpace(req.ChalanNumber))
	existing, err := h.Chalans.GetByNumber(number)
	if err != nil {
		writeError(w, apperr.Internal("failed to check chalan number", err))
		return
	}
	if existing != nil {
		writeError(w, apperr.Conflict("chalan %s already exists", number))
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

	ch := &models.LoadChalan{
		ID:           uuid.NewString(),
		ChalanNumber: number,
		ChalanDate:   time.Now().UTC(),
		FromCity:     req.FromCity,
		ToCity:       req.ToCity,
		Vehicle:      *vehicle.Snapshot(),
		Driver:       *driver.Snapshot(),
		AdvancePaid:  req.AdvancePaid,
		TDSDeduction: req.TDSDeduction,
		Status:       models.ChalanCreated,
		Remarks:      req.Remarks,
		CreatedAt:    time.Now().UTC(),
	}
	if req.ChalanDate != nil {
		ch.ChalanDate = *req.ChalanDate
	}

	lines, err := h.buildLines(req.ConsignmentIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	ch.Consignments = lines

	if err := h.Chalans.Create(ch); err != nil {
		writeError(w, apperr.Internal("failed to create chalan", err))
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: ch})
}

func (h *ChalanHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		filters["status"] = v
	}
	if v := q.Get("vehicle_id"); v != "" {
		filters["vehicle.vehicle_id"] = v
	}

	list, err := h.Chalans.List(filters)
	if err != nil {
		writeError(w, apperr.Internal("failed to list chalans", err))
		return
	}
	if list == nil {
		list = []*models.LoadChalan{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *ChalanHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	ch, err := h.loadChalan(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: ch})
}

func (h *ChalanHandler) GetByNumber(w http.ResponseWriter, r *http.Request, number string) {
	ch, err := h.Chalans.GetByNumber(strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch chalan", err))
		return
	}
	if ch == nil {
		writeError(w, apperr.NotFound("chalan not found"))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: ch})
}

type UpdateChalanRequest struct {
	FromCity       *string  `json:"from_city"`
	ToCity         *string  `json:"to_city"`
	ConsignmentIDs []string `json:"consignment_ids"`
	AdvancePaid    *float64 `json:"advance_paid"`
	TDSDeduction   *float64 `json:"tds_deduction"`
	Remarks        *string  `json:"remarks"`
	Status         *string  `json:"status"`
}

// Update edits settlement fields and optionally advances the status. Chalan
// statuses only move forward.
func (h *ChalanHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	ch, err := h.loadChalan(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateChalanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	if req.Status != nil {
		next := models.ChalanStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !ch.Status.CanTransitionTo(next) {
			writeError(w, apperr.InvalidTransition("cannot move chalan from %s to %s", ch.Status, next))
			return
		}
		ch.Status = next
	}
	if req.FromCity != nil {
		ch.FromCity = *req.FromCity
	}
	if req.ToCity != nil {
		ch.ToCity = *req.ToCity
	}
	if req.AdvancePaid != nil {
		ch.AdvancePaid = *req.AdvancePaid
	}
	if req.TDSDeduction != nil {
		ch.TDSDeduction = *req.TDSDeduction
	}
	if req.Remarks != nil {
		ch.Remarks = *req.Remarks
	}
	if req.ConsignmentIDs != nil {
		lines, err := h.buildLines(req.ConsignmentIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		ch.Consignments = lines
	}

	if err := h.Chalans.Update(ch); err != nil {
		writeError(w, apperr.Internal("failed to update chalan", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: ch})
}

// Delete removes the chalan outright; once dispatched the trip sheet is part
// of the settlement record and stays.
func (h *ChalanHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ch, err := h.loadChalan(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if ch.Status != models.ChalanCreated {
		writeError(w, apperr.InvalidState("cannot delete a %s chalan", ch.Status))
		return
	}
	if err := h.Chalans.Delete(ch.ID); err != nil {
		writeError(w, apperr.Internal("failed to delete chalan", err))
		return
	}
	discardRemotePDF(ch.PdfPath)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Chalan deleted successfully"})
}

// buildLines snapshots the given consignments into chalan line items.
func (h *ChalanHandler) buildLines(ids []string) ([]models.ChalanLineItem, error) {
	lines := make([]models.ChalanLineItem, 0, len(ids))
	for _, id := range ids {
		c, err := h.Consignments.GetByID(id)
		if err != nil {
			return nil, apperr.Internal("failed to fetch consignment", err)
		}
		if c == nil {
			return nil, apperr.NotFound("consignment %s not found", id)
		}
		lines = append(lines, models.ChalanLineItem{
			ConsignmentID:     c.ID,
			ConsignmentNumber: c.ConsignmentNumber,
			Packages:          c.Packages,
			PackageType:       c.PackageType,
			Description:       c.Description,
			Weight:            c.ChargedWeight,
			Freight:           c.Freight,
			ToCity:            c.ToCity,
		})
	}
	return lines, nil
}

func (h *ChalanHandler) loadChalan(id string) (*models.LoadChalan, error) {
	ch, err := h.Chalans.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to fetch chalan", err)
	}
	if ch == nil {
		return nil, apperr.NotFound("chalan not found")
	}
	return ch, nil
}
