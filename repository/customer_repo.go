package repository

import (
	"kvltransport/models"
)

type CustomerRepository interface {
	Create(c *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	List() ([]*models.Customer, error)
	Update(c *models.Customer) error
	SoftDelete(id string) error
}
