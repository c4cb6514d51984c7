package repository

import "kvltransport/models"

type CompanyRepository interface {
	SaveProfile(profile *models.CompanyProfile) error
	GetProfile() (*models.CompanyProfile, error)
}
