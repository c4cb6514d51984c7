package repository

import (
	"kvltransport/models"
)

// PDFRepository bundles the lookups the document renderers need.
type PDFRepository struct {
	ConsignmentRepo ConsignmentRepository
	BillRepo        FreightBillRepository
	ChalanRepo      ChalanRepository
	CompanyRepo     CompanyRepository
}

func NewPDFRepository(cons ConsignmentRepository, bills FreightBillRepository, chalans ChalanRepository, company CompanyRepository) *PDFRepository {
	return &PDFRepository{
		ConsignmentRepo: cons,
		BillRepo:        bills,
		ChalanRepo:      chalans,
		CompanyRepo:     company,
	}
}

func (r *PDFRepository) GetConsignmentForPDF(id string) (*models.Consignment, error) {
	return r.ConsignmentRepo.GetByID(id)
}

func (r *PDFRepository) GetBillForPDF(id string) (*models.FreightBill, error) {
	return r.BillRepo.GetByID(id)
}

func (r *PDFRepository) GetChalanForPDF(id string) (*models.LoadChalan, error) {
	return r.ChalanRepo.GetByID(id)
}

// GetCompanyForPDF fetches the letterhead profile.
func (r *PDFRepository) GetCompanyForPDF() (*models.CompanyProfile, error) {
	return r.CompanyRepo.GetProfile()
}
