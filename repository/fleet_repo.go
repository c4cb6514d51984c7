package repository

import (
	"kvltransport/models"
)

type VehicleRepository interface {
	Create(v *models.Vehicle) error
	GetByID(id string) (*models.Vehicle, error)
	GetByNumber(number string) (*models.Vehicle, error)
	List() ([]*models.Vehicle, error)
	Update(v *models.Vehicle) error
	SetStatus(id string, status models.VehicleStatus) error
}

type DriverRepository interface {
	Create(d *models.Driver) error
	GetByID(id string) (*models.Driver, error)
	GetByMobile(mobile string) (*models.Driver, error)
	List() ([]*models.Driver, error)
	Update(d *models.Driver) error
	// SetStatus also maintains the lookup-only current-vehicle
	// back-reference; pass nil to clear it.
	SetStatus(id string, status models.DriverStatus, currentVehicle *string) error
}
