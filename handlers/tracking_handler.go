package handlers

import (
	"net/http"
	"strings"
	"time"

	"kvltransport/apperr"
)

// TrackingInfo is the public, reduced view of a consignment. The endpoint is
// unauthenticated: no party or driver contact details, no charges, no
// internal ids.
type TrackingInfo struct {
	ConsignmentNumber string     `json:"consignment_number"`
	Status            string     `json:"status"`
	Route             string     `json:"route"`
	BookingDate       time.Time  `json:"booking_date"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	DeliveryDate      *time.Time `json:"delivery_date,omitempty"`
}

// Track serves the unauthenticated lookup by consignment number.
func (h *ConsignmentHandler) Track(w http.ResponseWriter, r *http.Request, number string) {
	c, err := h.Repo.GetByNumber(strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch consignment", err))
		return
	}
	if c == nil {
		writeError(w, apperr.NotFound("consignment not found"))
		return
	}

	info := TrackingInfo{
		ConsignmentNumber: c.ConsignmentNumber,
		Status:            string(c.Status),
		Route:             c.FromCity + " → " + c.ToCity,
		BookingDate:       c.BookingDate,
		DeliveryDate:      c.DeliveryDate,
	}
	if c.PickupDate != nil {
		eta := c.PickupDate.Add(48 * time.Hour)
		info.EstimatedDelivery = &eta
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: info})
}
