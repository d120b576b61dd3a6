package models

import (
	"time"
)

type Customer struct {
	Name          string `gorm:"primaryKey;size:140" json:"name"`
	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerGroup string `gorm:"size:140" json:"customer_group"`
	PaymentTerms  string `gorm:"size:140" json:"payment_terms"`
	Disabled      bool   `json:"disabled"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string {
	return "customers"
}

// Address and Contact attach to customers through DynamicLink rows, one row
// per linked document.
type Address struct {
	Name         string `gorm:"primaryKey;size:140"`
	AddressLine1 string `gorm:"column:address_line1"`
	City         string
	Disabled     bool
}

func (Address) TableName() string {
	return "addresses"
}

type Contact struct {
	Name             string `gorm:"primaryKey;size:140"`
	FirstName        string
	MobileNo         string `gorm:"size:40"`
	IsPrimaryContact bool
}

func (Contact) TableName() string {
	return "contacts"
}

type DynamicLink struct {
	ID          uint   `gorm:"primaryKey"`
	Parent      string `gorm:"size:140;index"`
	ParentType  string `gorm:"size:140"` // Address or Contact
	LinkDoctype string `gorm:"size:140"`
	LinkName    string `gorm:"size:140;index"`
}

func (DynamicLink) TableName() string {
	return "dynamic_links"
}
