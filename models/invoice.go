package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document lifecycle states.
const (
	DocStatusDraft     = 0
	DocStatusSubmitted = 1
	DocStatusCancelled = 2
)

const (
	InvoiceStatusUnpaid     = "Unpaid"
	InvoiceStatusPartlyPaid = "Partly Paid"
	InvoiceStatusPaid       = "Paid"
)

type PaymentTermsTemplate struct {
	Name       string `gorm:"primaryKey;size:140"`
	CreditDays int
}

func (PaymentTermsTemplate) TableName() string {
	return "payment_terms_templates"
}

type SalesInvoice struct {
	Name                 string `gorm:"primaryKey;size:140"`
	Customer             string `gorm:"size:140;index;not null"`
	CustomerName         string
	PostingDate          Date   `gorm:"index"`
	PostingTime          string `gorm:"size:16"`
	SetPostingTime       bool
	DueDate              Date
	PaymentTermsTemplate string `gorm:"size:140"`
	SellingPriceList     string `gorm:"size:140"`
	UpdateStock          bool
	Remarks              string `gorm:"type:text"`

	GrandTotal        decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	Status            string          `gorm:"size:40"`
	DocStatus         int             `gorm:"column:docstatus;index"`
	Owner             string          `gorm:"size:140"`

	Items []SalesInvoiceItem `gorm:"foreignKey:Parent;references:Name"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalesInvoice) TableName() string {
	return "sales_invoices"
}

type SalesInvoiceItem struct {
	ID        uint   `gorm:"primaryKey"`
	Parent    string `gorm:"size:140;index"`
	Idx       int
	ItemCode  string          `gorm:"size:140"`
	ItemName  string
	Qty       decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	UOM       string          `gorm:"column:uom;size:140"`
	Warehouse string          `gorm:"size:140"`
}

func (SalesInvoiceItem) TableName() string {
	return "sales_invoice_items"
}
