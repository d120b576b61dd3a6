package models

import "time"

const (
	RetailSettingsName = "Retail Settings"
	GlobalDefaultsName = "Global Defaults"
)

// RetailSettings is the single store-wide configuration record.
type RetailSettings struct {
	Name           string    `gorm:"primaryKey;size:140" json:"name"`
	DocType        string    `gorm:"-" json:"doctype"`
	WalkInCustomer string    `gorm:"size:140" json:"walk_in_customer"`
	StoreName      string    `gorm:"size:140" json:"store_name"`
	StoreAddress   string    `gorm:"type:text" json:"store_address"`
	Modified       time.Time `gorm:"autoUpdateTime" json:"modified"`
}

func (RetailSettings) TableName() string {
	return "retail_settings"
}

// GlobalDefaults carries system-wide defaults such as the reporting currency.
type GlobalDefaults struct {
	Name            string `gorm:"primaryKey;size:140"`
	DefaultCurrency string `gorm:"size:3"`
	DefaultCompany  string `gorm:"size:140"`
}

func (GlobalDefaults) TableName() string {
	return "global_defaults"
}
