package models

// Template data for the three document renderers. The Contacts string is
// the pre-formatted mobile list from the company profile.

type ConsignmentPDFData struct {
	Company   *CompanyProfile
	Cons      *Consignment
	Contacts  string
	Date      string
	CopyTitle string
}

type FreightBillPDFData struct {
	Company     *CompanyProfile
	Bill        *FreightBill
	Contacts    string
	Date        string
	AmountWords string
}

type LoadChalanPDFData struct {
	Company      *CompanyProfile
	Chalan       *LoadChalan
	Contacts     string
	Date         string
	BalanceWords string
}
