package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const PaymentTypeReceive = "Receive"

type PaymentEntry struct {
	Name           string `gorm:"primaryKey;size:140"`
	PaymentType    string `gorm:"size:40"`
	PostingDate    Date
	PartyType      string `gorm:"size:140"`
	Party          string `gorm:"size:140;index"`
	PaidFrom       string `gorm:"size:140"`
	PaidTo         string `gorm:"size:140"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	ReferenceNo    string          `gorm:"size:140"`
	ReferenceDate  Date
	Remarks        string `gorm:"type:text"`
	AgainstInvoice string `gorm:"size:140"`
	DocStatus      int    `gorm:"column:docstatus"`
	Owner          string `gorm:"size:140"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentEntry) TableName() string {
	return "payment_entries"
}
