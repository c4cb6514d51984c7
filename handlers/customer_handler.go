package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"kvltransport/apperr"
	"kvltransport/models"
	"kvltransport/repository"

	"github.com/google/uuid"
)

type CustomerHandler struct {
	Repo repository.CustomerRepository
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}
	if c.Name == "" || c.Mobile == "" {
		writeError(w, apperr.Validation("name and mobile are required"))
		return
	}

	c.ID = uuid.NewString()
	c.IsDeleted = false
	c.CreatedAt = time.Now().UTC()

	if err := h.Repo.Create(&c); err != nil {
		writeError(w, apperr.Internal("failed to create customer", err))
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: c})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		writeError(w, apperr.Internal("failed to list customers", err))
		return
	}
	if list == nil {
		list = []*models.Customer{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.Customer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Address != "" {
		c.Address = req.Address
	}
	if req.City != "" {
		c.City = req.City
	}
	if req.Mobile != "" {
		c.Mobile = req.Mobile
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.GSTNumber != nil {
		c.GSTNumber = req.GSTNumber
	}

	if err := h.Repo.Update(c); err != nil {
		writeError(w, apperr.Internal("failed to update customer", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

// Delete soft-deletes. Bills and consignments already carrying the customer
// snapshot are unaffected.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.loadCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Repo.SoftDelete(c.ID); err != nil {
		writeError(w, apperr.Internal("failed to delete customer", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Customer deleted successfully"})
}

func (h *CustomerHandler) loadCustomer(id string) (*models.Customer, error) {
	c, err := h.Repo.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to fetch customer", err)
	}
	if c == nil {
		return nil, apperr.NotFound("customer not found")
	}
	return c, nil
}
