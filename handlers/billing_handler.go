package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"kvltransport/apperr"
	"kvltransport/models"
	"kvltransport/repository"

	"github.com/google/uuid"
)

// BillingHandler aggregates delivered consignments into freight bills and
// drives the bill payment lifecycle.
type BillingHandler struct {
	Bills        repository.FreightBillRepository
	Consignments repository.ConsignmentRepository
	Customers    repository.CustomerRepository
	Sequences    repository.SequenceRepository
}

type CreateBillRequest struct {
	CustomerID     string                  `json:"customer_id"`
	CustomerName   string                  `json:"customer_name"`
	CustomerMobile string                  `json:"customer_mobile"`
	ConsignmentIDs []string                `json:"consignment_ids"`
	BillingBranch  string                  `json:"billing_branch"`
	BillDate       *time.Time              `json:"bill_date"`
	Adjustments    []models.BillAdjustment `json:"adjustments"`
}

// Create builds a freight bill from delivered, unbilled consignments of one
// customer. The bill insert and the consignment billed-stamps commit
// atomically; a consignment already on any live bill rejects the whole
// request.
func (h *BillingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}
	if len(req.ConsignmentIDs) == 0 {
		writeError(w, apperr.Validation("consignment_ids is required"))
		return
	}

	party, err := h.resolveParty(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	eligible, err := h.Consignments.FindDeliveredForParty(
		req.ConsignmentIDs, party.CustomerID, party.Name, req.CustomerMobile)
	if err != nil {
		writeError(w, apperr.Internal("failed to select consignments", err))
		return
	}
	if len(eligible) == 0 {
		writeError(w, apperr.Validation("no delivered unbilled consignments found for this customer"))
		return
	}

	ids := make([]string, 0, len(eligible))
	for _, c := range eligible {
		ids = append(ids, c.ID)
	}
	alreadyBilled, err := h.Bills.BilledConsignmentIDs(ids)
	if err != nil {
		writeError(w, apperr.Internal("failed to check existing bills", err))
		return
	}
	if len(alreadyBilled) > 0 {
		writeError(w, apperr.Conflict("consignments already billed: %s", strings.Join(alreadyBilled, ", ")))
		return
	}

	bill := &models.FreightBill{
		ID:            uuid.NewString(),
		BillDate:      time.Now().UTC(),
		BillingBranch: req.BillingBranch,
		Party:         *party,
		Status:        models.BillGenerated,
		CreatedAt:     time.Now().UTC(),
	}
	if req.BillDate != nil {
		bill.BillDate = *req.BillDate
	}

	for _, c := range eligible {
		bill.Consignments = append(bill.Consignments, models.BillLineItem{
			ConsignmentID:     c.ID,
			ConsignmentNumber: c.ConsignmentNumber,
			BookingDate:       c.BookingDate,
			ToCity:            c.ToCity,
			ChargedWeight:     c.ChargedWeight,
			Rate:              effectiveRate(c),
			Freight:           c.Freight,
			Hamali:            c.Hamali,
			STCharges:         c.STCharges,
			DoorDelivery:      c.DoorDelivery,
			OtherCharges:      c.OtherCharges,
			GrandTotal:        c.GrandTotal,
		})
	}

	bill.Adjustments = models.FilterAdjustments(req.Adjustments)
	bill.RecalculateTotals()

	year := bill.BillDate.Year()
	seq, err := h.Sequences.Next(repository.SequenceFreightBill, year)
	if err != nil {
		writeError(w, apperr.Internal("failed to generate bill number", err))
		return
	}
	bill.BillNumber = fmt.Sprintf("KVL%d%05d", year, seq)

	if err := h.Bills.CreateWithConsignments(bill); err != nil {
		writeError(w, apperr.Internal("failed to create freight bill", err))
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: bill})
}

// resolveParty freezes the billed-customer block. A customer id takes
// precedence; name+mobile is the fallback for records never linked to the
// customer master.
func (h *BillingHandler) resolveParty(req *CreateBillRequest) (*models.BillParty, error) {
	if req.CustomerID != "" {
		customer, err := h.Customers.GetByID(req.CustomerID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch customer", err)
		}
		if customer == nil {
			return nil, apperr.NotFound("customer not found")
		}
		return &models.BillParty{
			CustomerID: customer.ID,
			Name:       customer.Name,
			Address:    customer.Address,
			GSTNumber:  customer.GSTNumber,
		}, nil
	}
	if req.CustomerName == "" || req.CustomerMobile == "" {
		return nil, apperr.Validation("customer_id or customer_name and customer_mobile are required")
	}
	return &models.BillParty{
		Name: req.CustomerName,
	}, nil
}

// effectiveRate is the line-item display rate: freight over charged weight,
// two decimals. The booking rate field is not trusted here; the snapshot
// always reflects what was actually charged.
func effectiveRate(c *models.Consignment) float64 {
	if c.ChargedWeight == 0 {
		return 0
	}
	return math.Round(c.Freight/c.ChargedWeight*100) / 100
}

func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		filters["status"] = v
	}
	if v := q.Get("customer_id"); v != "" {
		filters["party.customer_id"] = v
	}

	list, err := h.Bills.List(filters)
	if err != nil {
		writeError(w, apperr.Internal("failed to list freight bills", err))
		return
	}
	if list == nil {
		list = []*models.FreightBill{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *BillingHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.loadBill(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bill})
}

type UpdateBillStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a bill forward along its chain. Re-asserting the
// current terminal status is accepted without effect.
func (h *BillingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.loadBill(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateBillStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	next := models.BillStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !bill.Status.CanTransitionTo(next) {
		writeError(w, apperr.InvalidTransition("cannot move bill from %s to %s", bill.Status, next))
		return
	}
	if next == bill.Status {
		writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bill})
		return
	}

	bill.Status = next
	if err := h.Bills.Update(bill); err != nil {
		writeError(w, apperr.Internal("failed to update freight bill", err))
		return
	}

	if next == models.BillPaid {
		h.cascadePaid(bill)
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bill})
}

// MarkAsPaid is the shortcut used by the receipts screen.
func (h *BillingHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.loadBill(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if bill.Status == models.BillPaid || bill.Status == models.BillCancelled {
		writeError(w, apperr.InvalidState("cannot mark a %s bill as paid", bill.Status))
		return
	}

	bill.Status = models.BillPaid
	if err := h.Bills.Update(bill); err != nil {
		writeError(w, apperr.Internal("failed to update freight bill", err))
		return
	}
	h.cascadePaid(bill)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bill})
}

// cascadePaid stamps PAID on the line-item consignments. Best effort: the
// bill status is already committed and a partial cascade is repairable by
// re-marking.
func (h *BillingHandler) cascadePaid(bill *models.FreightBill) {
	ids := make([]string, 0, len(bill.Consignments))
	for _, line := range bill.Consignments {
		ids = append(ids, line.ConsignmentID)
	}
	if len(ids) == 0 {
		return
	}
	if err := h.Bills.SetConsignmentsPaymentStatus(ids, models.PaymentStatusPaid); err != nil {
		log.Printf("failed to cascade paid status for bill %s: %v", bill.BillNumber, err)
	}
}

// Delete soft-deletes the bill and atomically rolls every line-item
// consignment back to UNBILLED. Refused once money has moved.
func (h *BillingHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.loadBill(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if bill.Status == models.BillPaid || bill.Status == models.BillPartiallyPaid {
		writeError(w, apperr.InvalidState("cannot delete a %s bill", bill.Status))
		return
	}

	if err := h.Bills.DeleteWithRollback(bill); err != nil {
		writeError(w, apperr.Internal("failed to delete freight bill", err))
		return
	}
	discardRemotePDF(bill.PdfPath)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Freight bill deleted successfully"})
}

func (h *BillingHandler) loadBill(id string) (*models.FreightBill, error) {
	bill, err := h.Bills.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to fetch freight bill", err)
	}
	if bill == nil {
		return nil, apperr.NotFound("freight bill not found")
	}
	return bill, nil
}
