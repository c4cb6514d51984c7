package repository

import (
	"kvltransport/models"
)

// ConsignmentRepository is the persistence boundary for consignments. Reads
// return nil (not an error) when nothing matches; soft-deleted documents are
// invisible to every method except List with an explicit is_deleted filter.
type ConsignmentRepository interface {
	Create(c *models.Consignment) error
	GetByID(id string) (*models.Consignment, error)
	GetByNumber(number string) (*models.Consignment, error)
	List(filters map[string]interface{}) ([]*models.Consignment, error)
	Update(c *models.Consignment) error
	SoftDelete(id, deletedBy string) error

	// CountActiveForVehicle counts other non-deleted consignments holding
	// the vehicle in an active status. Computed fresh on every call; the
	// release algorithm must never rely on a cached figure.
	CountActiveForVehicle(vehicleID, excludeConsignmentID string) (int64, error)
	CountActiveForDriver(driverID, excludeConsignmentID string) (int64, error)

	// FindDeliveredForParty selects, from the given ids, the non-deleted
	// DELIVERED consignments belonging to the customer either by reference
	// or by name+mobile fallback for legacy records. Billed state is not
	// filtered here; exclusivity is the bill index scan's job.
	FindDeliveredForParty(ids []string, customerID, name, mobile string) ([]*models.Consignment, error)
}
