package repository

import (
	"kvltransport/models"
)

type ChalanRepository interface {
	Create(ch *models.LoadChalan) error
	GetByID(id string) (*models.LoadChalan, error)
	GetByNumber(number string) (*models.LoadChalan, error)
	List(filters map[string]interface{}) ([]*models.LoadChalan, error)
	Update(ch *models.LoadChalan) error
	Delete(id string) error
}
