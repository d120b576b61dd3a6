package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const PartyTypeCustomer = "Customer"

// GLEntry is an immutable general-ledger posting. Customer balances are
// derived from these rows and never stored.
type GLEntry struct {
	Name        string          `gorm:"primaryKey;size:36"`
	PostingDate Date            `gorm:"index"`
	Account     string          `gorm:"size:140;index"`
	PartyType   string          `gorm:"size:140"`
	Party       string          `gorm:"size:140;index"`
	Debit       decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	VoucherType string          `gorm:"size:140"`
	VoucherNo   string          `gorm:"size:140;index"`
	IsCancelled bool
	Remarks     string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (GLEntry) TableName() string {
	return "gl_entries"
}

func (e *GLEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.Name == "" {
		e.Name = uuid.NewString()
	}
	return
}

// NamingSeries holds the last number issued for a document name prefix.
type NamingSeries struct {
	Prefix  string `gorm:"primaryKey;size:140"`
	Current int    `gorm:"column:current_value;not null"`
}

func (NamingSeries) TableName() string {
	return "naming_series"
}
