package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"retail-backend/models"
	"retail-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPaymentTerms = "Standard"
	salesInvoicePrefix  = "ACC-SINV-"
	salesInvoiceDocType = "Sales Invoice"
)

type InvoiceOptions struct {
	DefaultWarehouse   string
	ReceivableAccount  string
	IncomeAccount      string
	AllowNegativeStock bool
}

type InvoiceService struct {
	db       *gorm.DB
	settings *SettingsService
	opts     InvoiceOptions

	mu     sync.RWMutex
	walkIn *string
}

func NewInvoiceService(db *gorm.DB, settings *SettingsService, opts InvoiceOptions) *InvoiceService {
	s := &InvoiceService{db: db, settings: settings, opts: opts}
	settings.OnUpdate(func(rs models.RetailSettings) {
		s.setWalkInCustomer(rs.WalkInCustomer)
	})
	return s
}

func (s *InvoiceService) setWalkInCustomer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walkIn = &name
}

func (s *InvoiceService) walkInCustomer(ctx context.Context) (string, error) {
	s.mu.RLock()
	cached := s.walkIn
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	s.setWalkInCustomer(settings.WalkInCustomer)
	return settings.WalkInCustomer, nil
}

type InvoiceItemInput struct {
	ItemCode  string        `json:"item_code" validate:"required"`
	Qty       models.Float  `json:"qty"`
	Rate      *models.Float `json:"rate"`
	UOM       string        `json:"uom"`
	Warehouse string        `json:"warehouse"`
}

type SalesInvoiceInput struct {
	Customer             string       `json:"customer"`
	PostingDate          models.Date  `json:"posting_date"`
	PostingTime          string       `json:"posting_time"`
	SetPostingTime       models.Check `json:"set_posting_time"`
	DueDate              models.Date  `json:"due_date"`
	PaymentTermsTemplate *string      `json:"payment_terms_template"`
	SellingPriceList     string       `json:"selling_price_list"`
	Remarks              string       `json:"remarks"`
	UpdateStock          models.Check `json:"update_stock"`

	Items []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
}

// DecodeSalesInvoice parses the JSON document sent by the client.
func DecodeSalesInvoice(raw string) (SalesInvoiceInput, error) {
	var input SalesInvoiceInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return input, validationErrorf("invalid invoice data: %v", err)
	}
	return input, nil
}

// Create inserts and submits a sales invoice in one transaction: the invoice
// and its lines, the receivable and income ledger rows, and the stock
// movement either all persist or none do.
func (s *InvoiceService) Create(ctx context.Context, input SalesInvoiceInput, owner string) (*models.SalesInvoice, error) {
	input.UpdateStock = true

	if err := utils.NewValidator().Struct(input); err != nil {
		return nil, &ValidationError{Message: utils.ValidationMessage(err)}
	}

	customerName := strings.TrimSpace(input.Customer)
	if customerName == "" {
		walkIn, err := s.walkInCustomer(ctx)
		if err != nil {
			return nil, err
		}
		customerName = walkIn
	}
	if customerName == "" {
		return nil, validationErrorf("customer is required")
	}

	var invoice *models.SalesInvoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, terms, err := s.resolveCustomerTerms(tx, customerName, input.PaymentTermsTemplate)
		if err != nil {
			return err
		}

		invoice, err = s.buildInvoice(tx, customer, terms, input, owner)
		if err != nil {
			return err
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("insert sales invoice: %w", err)
		}
		return s.submit(tx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// resolveCustomerTerms returns the customer and the payment terms template
// to apply. An explicitly supplied template, even an empty one, wins over the
// customer default.
func (s *InvoiceService) resolveCustomerTerms(tx *gorm.DB, name string, requested *string) (*models.Customer, *models.PaymentTermsTemplate, error) {
	var customer models.Customer
	err := tx.Where("name = ?", name).First(&customer).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	found := err == nil

	var termsName string
	if requested != nil {
		termsName = strings.TrimSpace(*requested)
	} else {
		if !found {
			return nil, nil, validationErrorf("Customer %s not found", name)
		}
		termsName = customer.PaymentTerms
		if termsName == "" {
			termsName = DefaultPaymentTerms
			exists, err := recordExists(tx, &models.PaymentTermsTemplate{}, termsName)
			if err != nil {
				return nil, nil, err
			}
			if !exists {
				return nil, nil, validationErrorf("Payment Terms Template '%s' does not exist. Please create it.", DefaultPaymentTerms)
			}
		}
	}

	if !found {
		return nil, nil, &NotFoundError{DocType: "Customer", Name: name}
	}
	if customer.Disabled {
		return nil, nil, validationErrorf("Customer %s is disabled", name)
	}

	if termsName == "" {
		return &customer, nil, nil
	}
	var terms models.PaymentTermsTemplate
	if err := tx.Where("name = ?", termsName).First(&terms).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{DocType: "Payment Terms Template", Name: termsName}
		}
		return nil, nil, err
	}
	return &customer, &terms, nil
}

func recordExists(tx *gorm.DB, model interface{}, name string) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *InvoiceService) buildInvoice(tx *gorm.DB, customer *models.Customer, terms *models.PaymentTermsTemplate, input SalesInvoiceInput, owner string) (*models.SalesInvoice, error) {
	now := time.Now()
	postingDate := models.NewDate(now)
	postingTime := now.Format("15:04:05")
	if input.SetPostingTime {
		if !input.PostingDate.IsZero() {
			postingDate = input.PostingDate
		}
		if input.PostingTime != "" {
			postingTime = input.PostingTime
		}
	}

	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = postingDate
		if terms != nil {
			dueDate = postingDate.AddDays(terms.CreditDays)
		}
	}
	if utils.DaysBetween(postingDate.Time, dueDate.Time) < 0 {
		return nil, validationErrorf("Due Date cannot be before Posting Date")
	}

	priceList, err := s.sellingPriceList(tx, input.SellingPriceList)
	if err != nil {
		return nil, err
	}

	name, err := nextName(tx, fmt.Sprintf("%s%d-", salesInvoicePrefix, postingDate.Year()))
	if err != nil {
		return nil, err
	}

	invoice := &models.SalesInvoice{
		Name:             name,
		Customer:         customer.Name,
		CustomerName:     customer.CustomerName,
		PostingDate:      postingDate,
		PostingTime:      postingTime,
		SetPostingTime:   bool(input.SetPostingTime),
		DueDate:          dueDate,
		SellingPriceList: priceList,
		UpdateStock:      bool(input.UpdateStock),
		Remarks:          input.Remarks,
		DocStatus:        models.DocStatusDraft,
		Owner:            owner,
	}
	if terms != nil {
		invoice.PaymentTermsTemplate = terms.Name
	}

	total := decimal.Zero
	for i, line := range input.Items {
		row, err := s.buildLine(tx, i+1, line, priceList)
		if err != nil {
			return nil, err
		}
		row.Parent = name
		total = total.Add(row.Amount)
		invoice.Items = append(invoice.Items, *row)
	}
	invoice.GrandTotal = total
	invoice.OutstandingAmount = total
	return invoice, nil
}

func (s *InvoiceService) sellingPriceList(tx *gorm.DB, requested string) (string, error) {
	if requested != "" {
		exists, err := recordExists(tx, &models.PriceList{}, requested)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", &NotFoundError{DocType: "Price List", Name: requested}
		}
		return requested, nil
	}

	var list models.PriceList
	err := tx.Where("selling = ?", true).Order("name").First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return list.Name, err
}

func (s *InvoiceService) buildLine(tx *gorm.DB, idx int, line InvoiceItemInput, priceList string) (*models.SalesInvoiceItem, error) {
	var item models.Item
	if err := tx.Where("item_code = ?", line.ItemCode).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{DocType: "Item", Name: line.ItemCode}
		}
		return nil, err
	}
	if item.Disabled {
		return nil, validationErrorf("Item %s is disabled", item.ItemCode)
	}

	qty := line.Qty.Decimal
	if !qty.IsPositive() {
		return nil, validationErrorf("Row #%d: Qty must be greater than 0", idx)
	}

	var rate decimal.Decimal
	if line.Rate != nil {
		rate = line.Rate.Decimal
	} else {
		var err error
		if rate, err = s.priceListRate(tx, item.ItemCode, priceList); err != nil {
			return nil, err
		}
	}
	if rate.IsNegative() {
		return nil, validationErrorf("Row #%d: Rate cannot be negative", idx)
	}

	uom := line.UOM
	if uom == "" {
		uom = item.StockUOM
	}
	warehouse := line.Warehouse
	if warehouse == "" {
		warehouse = s.opts.DefaultWarehouse
	}

	return &models.SalesInvoiceItem{
		Idx:       idx,
		ItemCode:  item.ItemCode,
		ItemName:  item.ItemName,
		Qty:       qty,
		Rate:      rate,
		Amount:    qty.Mul(rate).Round(2),
		UOM:       uom,
		Warehouse: warehouse,
	}, nil
}

func (s *InvoiceService) priceListRate(tx *gorm.DB, itemCode, priceList string) (decimal.Decimal, error) {
	if priceList == "" {
		return decimal.Zero, nil
	}
	var price models.ItemPrice
	err := tx.Where("item_code = ? AND price_list = ?", itemCode, priceList).Order("name").First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return price.PriceListRate, nil
}

func (s *InvoiceService) submit(tx *gorm.DB, invoice *models.SalesInvoice) error {
	status := models.InvoiceStatusUnpaid
	if !invoice.OutstandingAmount.IsPositive() {
		status = models.InvoiceStatusPaid
	}
	err := tx.Model(&models.SalesInvoice{}).
		Where("name = ?", invoice.Name).
		Updates(map[string]interface{}{
			"docstatus": models.DocStatusSubmitted,
			"status":    status,
		}).Error
	if err != nil {
		return fmt.Errorf("submit %s: %w", invoice.Name, err)
	}
	invoice.DocStatus = models.DocStatusSubmitted
	invoice.Status = status

	if invoice.UpdateStock {
		for _, line := range invoice.Items {
			if err := s.consumeStock(tx, line); err != nil {
				return err
			}
		}
	}

	if invoice.GrandTotal.IsZero() {
		return nil
	}
	return postGL(tx,
		voucher{Type: salesInvoiceDocType, No: invoice.Name, Date: invoice.PostingDate, Remarks: invoice.Remarks},
		glPosting{Account: s.opts.ReceivableAccount, Party: invoice.Customer, Debit: invoice.GrandTotal, Credit: decimal.Zero},
		glPosting{Account: s.opts.IncomeAccount, Debit: decimal.Zero, Credit: invoice.GrandTotal},
	)
}

func (s *InvoiceService) consumeStock(tx *gorm.DB, line models.SalesInvoiceItem) error {
	var bin models.Bin
	err := forUpdate(tx).Where("item_code = ? AND warehouse = ?", line.ItemCode, line.Warehouse).First(&bin).Error
	exists := true
	if errors.Is(err, gorm.ErrRecordNotFound) {
		exists = false
		bin = models.Bin{ItemCode: line.ItemCode, Warehouse: line.Warehouse, ActualQty: decimal.Zero}
	} else if err != nil {
		return fmt.Errorf("load stock for %s: %w", line.ItemCode, err)
	}

	remaining := bin.ActualQty.Sub(line.Qty)
	if remaining.IsNegative() && !s.opts.AllowNegativeStock {
		return validationErrorf("Insufficient stock for Item %s in Warehouse %s: %s available, %s required",
			line.ItemCode, line.Warehouse, bin.ActualQty.String(), line.Qty.String())
	}

	if !exists {
		bin.ActualQty = remaining
		return tx.Create(&bin).Error
	}
	return tx.Model(&models.Bin{}).Where("id = ?", bin.ID).Update("actual_qty", remaining).Error
}

type InvoiceQuery struct {
	Page        int
	PerPage     int
	Customer    string
	StartDate   string
	EndDate     string
	InvoiceName string
}

type InvoiceLine struct {
	ItemCode string  `json:"item_code"`
	ItemName string  `json:"item_name"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate"`
	UOM      string  `json:"uom"`
}

type InvoiceSummary struct {
	Name           string        `json:"name"`
	DocType        string        `json:"doctype"`
	Customer       string        `json:"customer"`
	DueDate        models.Date   `json:"due_date"`
	Items          []InvoiceLine `json:"items"`
	PostingDate    models.Date   `json:"posting_date"`
	SetPostingTime models.Check  `json:"set_posting_time"`
	PostingTime    *string       `json:"posting_time"`
	InvoiceTotal   float64       `json:"invoice_total"`
	TotalPaid      float64       `json:"total_paid"`
	Status         string        `json:"status"`
	CreatedBy      string        `json:"created_by"`
}

type InvoicePagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
}

type InvoicePage struct {
	Invoices   []InvoiceSummary  `json:"invoices"`
	Pagination InvoicePagination `json:"pagination"`
}

// List returns one page of invoices, most recently modified first.
func (s *InvoiceService) List(ctx context.Context, q InvoiceQuery) (*InvoicePage, error) {
	if q.Page < 1 {
		return nil, validationErrorf("page must be at least 1")
	}
	if q.PerPage < 1 {
		return nil, validationErrorf("per_page must be at least 1")
	}

	filter, err := invoiceFilter(q)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var total int64
	if err := filter(db.Model(&models.SalesInvoice{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count sales invoices: %w", err)
	}

	var invoices []models.SalesInvoice
	err = filter(db.Model(&models.SalesInvoice{})).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("idx") }).
		Order("updated_at DESC, name DESC").
		Offset((q.Page - 1) * q.PerPage).
		Limit(q.PerPage).
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("load sales invoices: %w", err)
	}

	page := &InvoicePage{
		Invoices: make([]InvoiceSummary, 0, len(invoices)),
		Pagination: InvoicePagination{
			Page:       q.Page,
			PerPage:    q.PerPage,
			TotalCount: total,
		},
	}
	for _, inv := range invoices {
		page.Invoices = append(page.Invoices, summarizeInvoice(inv))
	}
	return page, nil
}

func invoiceFilter(q InvoiceQuery) (func(*gorm.DB) *gorm.DB, error) {
	var start, end models.Date
	var err error
	if q.StartDate != "" {
		if start, err = models.ParseDate(q.StartDate); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
	}
	if q.EndDate != "" {
		if end, err = models.ParseDate(q.EndDate); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		if q.Customer != "" {
			db = db.Where("customer = ?", q.Customer)
		}
		switch {
		case !start.IsZero() && !end.IsZero():
			db = db.Where("posting_date BETWEEN ? AND ?", start, end)
		case !start.IsZero():
			db = db.Where("posting_date >= ?", start)
		case !end.IsZero():
			db = db.Where("posting_date <= ?", end)
		}
		if q.InvoiceName != "" {
			db = db.Where("name LIKE ?", "%"+q.InvoiceName+"%")
		}
		return db
	}, nil
}

func summarizeInvoice(inv models.SalesInvoice) InvoiceSummary {
	lines := make([]InvoiceLine, 0, len(inv.Items))
	for _, item := range inv.Items {
		lines = append(lines, InvoiceLine{
			ItemCode: item.ItemCode,
			ItemName: item.ItemName,
			Qty:      item.Qty.InexactFloat64(),
			Rate:     item.Rate.InexactFloat64(),
			UOM:      item.UOM,
		})
	}

	var postingTime *string
	if inv.PostingTime != "" {
		t := inv.PostingTime
		postingTime = &t
	}

	return InvoiceSummary{
		Name:           inv.Name,
		DocType:        salesInvoiceDocType,
		Customer:       inv.Customer,
		DueDate:        inv.DueDate,
		Items:          lines,
		PostingDate:    inv.PostingDate,
		SetPostingTime: models.Check(inv.SetPostingTime),
		PostingTime:    postingTime,
		InvoiceTotal:   inv.GrandTotal.InexactFloat64(),
		TotalPaid:      inv.GrandTotal.Sub(inv.OutstandingAmount).InexactFloat64(),
		Status:         inv.Status,
		CreatedBy:      inv.Owner,
	}
}
