package models

import "time"

type MobileEntry struct {
	Number string `json:"number" bson:"number"`
	Label  string `json:"label" bson:"label"`
}

// CompanyProfile is the letterhead block printed on every document.
type CompanyProfile struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	CompanyName string        `json:"company_name" bson:"company_name"`
	Address     string        `json:"address" bson:"address"`
	City        string        `json:"city" bson:"city"`
	State       string        `json:"state" bson:"state"`
	Pincode     string        `json:"pincode" bson:"pincode"`
	GSTIN       string        `json:"gstin" bson:"gstin"`
	Footnote    string        `json:"footnote" bson:"footnote"`
	Mobile      []MobileEntry `json:"mobile" bson:"mobile"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}
