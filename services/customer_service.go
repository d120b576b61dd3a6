package services

import (
	"context"
	"fmt"

	"retail-backend/models"
	"retail-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewCustomerService(db *gorm.DB, settings *SettingsService) *CustomerService {
	return &CustomerService{db: db, settings: settings}
}

// Balance is a customer's standing derived from the general ledger. At most
// one of Advance and Due is non-zero.
type Balance struct {
	Advance decimal.Decimal
	Due     decimal.Decimal
}

// ComputeBalance nets debits against credits. More credit than debit is an
// advance, more debit than credit is an amount due.
func ComputeBalance(entries []models.GLEntry) Balance {
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	net := credit.Sub(debit)
	if net.IsPositive() {
		return Balance{Advance: net, Due: decimal.Zero}
	}
	return Balance{Advance: decimal.Zero, Due: net.Neg()}
}

// CustomerBalance loads the customer's non-cancelled ledger entries.
func (s *CustomerService) CustomerBalance(ctx context.Context, customer string) (Balance, error) {
	var entries []models.GLEntry
	err := s.db.WithContext(ctx).
		Where("party_type = ? AND party = ? AND is_cancelled = ?", models.PartyTypeCustomer, customer, false).
		Find(&entries).Error
	if err != nil {
		return Balance{}, fmt.Errorf("load ledger for %s: %w", customer, err)
	}
	return ComputeBalance(entries), nil
}

type CustomerSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AdvanceBalance string `json:"advance_balance"`
	TotalDue       string `json:"total_due"`
}

func (s *CustomerService) Customers(ctx context.Context) ([]CustomerSummary, error) {
	currency, err := s.settings.DefaultCurrency(ctx)
	if err != nil {
		return nil, err
	}

	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("name").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	result := make([]CustomerSummary, 0, len(customers))
	for _, c := range customers {
		balance, err := s.CustomerBalance(ctx, c.Name)
		if err != nil {
			return nil, err
		}
		result = append(result, CustomerSummary{
			ID:             c.Name,
			Name:           c.CustomerName,
			AdvanceBalance: utils.FormatMoney(balance.Advance, currency),
			TotalDue:       utils.FormatMoney(balance.Due, currency),
		})
	}
	return result, nil
}

type CustomerWithBalance struct {
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
	Contact      string `json:"contact"`
	TotalDebits  string `json:"total_debits"`
	TotalCredits string `json:"total_credits"`
}

type PageInfo struct {
	PageNumber   int  `json:"page_number"`
	PerPage      int  `json:"per_page"`
	PreviousPage *int `json:"previous_page"`
	NextPage     *int `json:"next_page"`
}

type CustomerBalancePage struct {
	Customers  []CustomerWithBalance `json:"customers"`
	Pagination PageInfo              `json:"pagination"`
}

type balanceRow struct {
	CustomerName string
	Address      string
	Contact      string
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

const (
	addressSubquery = `COALESCE((SELECT a.address_line1 FROM addresses a
		JOIN dynamic_links dl ON dl.parent = a.name
		WHERE dl.parent_type = ? AND dl.link_doctype = ? AND dl.link_name = customers.name AND a.disabled = ?
		ORDER BY a.name LIMIT 1), '')`
	contactSubquery = `COALESCE((SELECT ct.mobile_no FROM contacts ct
		JOIN dynamic_links dl ON dl.parent = ct.name
		WHERE dl.parent_type = ? AND dl.link_doctype = ? AND dl.link_name = customers.name AND ct.is_primary_contact = ?
		ORDER BY ct.name LIMIT 1), '')`
)

// CustomersWithBalances pages through customers holding at least one
// submitted invoice with a non-zero outstanding amount. A next page is
// advertised whenever the current page is full, so a result count that is an
// exact multiple of pageLength ends with one empty page.
func (s *CustomerService) CustomersWithBalances(ctx context.Context, pageNumber, pageLength int) (*CustomerBalancePage, error) {
	if pageNumber < 1 {
		return nil, validationErrorf("page_number must be at least 1")
	}
	if pageLength < 1 {
		return nil, validationErrorf("page_length must be at least 1")
	}

	currency, err := s.settings.DefaultCurrency(ctx)
	if err != nil {
		return nil, err
	}

	var rows []balanceRow
	err = s.db.WithContext(ctx).
		Table("customers").
		Select(`customers.customer_name AS customer_name, `+
			addressSubquery+` AS address, `+
			contactSubquery+` AS contact, `+
			`COALESCE(SUM(CASE WHEN sales_invoices.outstanding_amount > 0 THEN sales_invoices.outstanding_amount ELSE 0 END), 0) AS total_debits, `+
			`COALESCE(SUM(CASE WHEN sales_invoices.outstanding_amount < 0 THEN -sales_invoices.outstanding_amount ELSE 0 END), 0) AS total_credits`,
			"Address", models.PartyTypeCustomer, false,
			"Contact", models.PartyTypeCustomer, true).
		Joins("JOIN sales_invoices ON sales_invoices.customer = customers.name").
		Where("sales_invoices.docstatus = ? AND sales_invoices.outstanding_amount <> 0", models.DocStatusSubmitted).
		Group("customers.name, customers.customer_name").
		Order("customers.customer_name, customers.name").
		Limit(pageLength).
		Offset((pageNumber - 1) * pageLength).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load customer balances: %w", err)
	}

	customers := make([]CustomerWithBalance, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, CustomerWithBalance{
			CustomerName: r.CustomerName,
			Address:      r.Address,
			Contact:      r.Contact,
			TotalDebits:  utils.FormatMoney(r.TotalDebits, currency),
			TotalCredits: utils.FormatMoney(r.TotalCredits, currency),
		})
	}

	return &CustomerBalancePage{
		Customers:  customers,
		Pagination: pageInfo(pageNumber, pageLength, len(rows)),
	}, nil
}

func pageInfo(pageNumber, pageLength, rows int) PageInfo {
	info := PageInfo{PageNumber: pageNumber, PerPage: pageLength}
	if pageNumber > 1 {
		prev := pageNumber - 1
		info.PreviousPage = &prev
	}
	if rows == pageLength {
		next := pageNumber + 1
		info.NextPage = &next
	}
	return info
}
