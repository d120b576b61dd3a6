package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	Name     string `gorm:"primaryKey;size:140"`
	ItemCode string `gorm:"size:140;uniqueIndex;not null"`
	ItemName string `gorm:"not null"`
	StockUOM string `gorm:"column:stock_uom;size:140"`
	Disabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Item) TableName() string {
	return "items"
}

type PriceList struct {
	Name     string `gorm:"primaryKey;size:140"`
	Currency string `gorm:"size:3"`
	Selling  bool   `gorm:"index"`
	Buying   bool
}

func (PriceList) TableName() string {
	return "price_lists"
}

type ItemPrice struct {
	Name          string          `gorm:"primaryKey;size:140"`
	ItemCode      string          `gorm:"size:140;index"`
	PriceList     string          `gorm:"size:140;index"`
	PriceListRate decimal.Decimal `gorm:"type:decimal(21,9);not null"`
	UOM           string          `gorm:"column:uom;size:140"`
}

func (ItemPrice) TableName() string {
	return "item_prices"
}

// Bin is the on-hand quantity of one item in one warehouse.
type Bin struct {
	ID        uint            `gorm:"primaryKey"`
	ItemCode  string          `gorm:"size:140;uniqueIndex:idx_bin_item_warehouse,priority:1"`
	Warehouse string          `gorm:"size:140;uniqueIndex:idx_bin_item_warehouse,priority:2"`
	ActualQty decimal.Decimal `gorm:"type:decimal(21,9);not null"`
}

func (Bin) TableName() string {
	return "bins"
}
