package models

import "time"

// Customer is the party master referenced by consignor/consignee blocks.
type Customer struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Name      string     `json:"name" bson:"name"`
	Address   string     `json:"address" bson:"address"`
	City      string     `json:"city,omitempty" bson:"city,omitempty"`
	Mobile    string     `json:"mobile" bson:"mobile"`
	Email     *string    `json:"email,omitempty" bson:"email,omitempty"`
	GSTNumber *string    `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
	IsDeleted bool       `json:"is_deleted" bson:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
