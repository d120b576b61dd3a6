package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&RetailSettings{},
		&GlobalDefaults{},
		&Customer{},
		&Address{},
		&Contact{},
		&DynamicLink{},
		&GLEntry{},
		&NamingSeries{},
		&Item{},
		&PriceList{},
		&ItemPrice{},
		&Bin{},
		&PaymentTermsTemplate{},
		&SalesInvoice{},
		&SalesInvoiceItem{},
		&PaymentEntry{},
		&ErrorLog{},
	}
}
