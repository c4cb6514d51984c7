package repository

import (
	"kvltransport/models"
)

// FreightBillRepository persists bills. CreateWithConsignments and
// DeleteWithRollback are the two multi-document operations in the system
// and must be atomic: the bill write and the line-item consignment updates
// commit or abort together.
type FreightBillRepository interface {
	// CreateWithConsignments inserts the bill and, in the same
	// transaction, stamps every line-item consignment with billed_in,
	// billed_date and payment_status=BILLED.
	CreateWithConsignments(bill *models.FreightBill) error

	GetByID(id string) (*models.FreightBill, error)
	List(filters map[string]interface{}) ([]*models.FreightBill, error)
	Update(bill *models.FreightBill) error

	// BilledConsignmentIDs returns which of the given consignment ids
	// already appear in any non-deleted bill's line items.
	BilledConsignmentIDs(ids []string) ([]string, error)

	// SetConsignmentsPaymentStatus cascades a payment status onto the
	// given consignments (markAsPaid path, deliberately not transactional
	// with bill creation).
	SetConsignmentsPaymentStatus(ids []string, status string) error

	// DeleteWithRollback soft-deletes the bill and, in the same
	// transaction, clears billed_in/billed_date and resets
	// payment_status=UNBILLED on every referenced consignment.
	DeleteWithRollback(bill *models.FreightBill) error
}
