package services

import (
	"context"
	"fmt"
	"testing"

	"retail-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestComputeBalance(t *testing.T) {
	entry := func(debit, credit string) models.GLEntry {
		return models.GLEntry{Debit: dec(debit), Credit: dec(credit)}
	}

	tests := []struct {
		name        string
		entries     []models.GLEntry
		wantAdvance string
		wantDue     string
	}{
		{"no entries", nil, "0", "0"},
		{"invoice only", []models.GLEntry{entry("9000", "0")}, "0", "9000"},
		{"part paid", []models.GLEntry{entry("9000", "0"), entry("0", "4000")}, "0", "5000"},
		{"overpaid", []models.GLEntry{entry("100.10", "0"), entry("0", "150.35")}, "50.25", "0"},
		{"settled", []models.GLEntry{entry("700", "0"), entry("0", "700")}, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeBalance(tt.entries)
			assertDecimal(t, tt.wantAdvance, b.Advance)
			assertDecimal(t, tt.wantDue, b.Due)
			assert.False(t, b.Advance.IsNegative())
			assert.False(t, b.Due.IsNegative())
		})
	}
}

func TestCustomerService_Customers(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db,
		&models.Customer{Name: "CUST-001", CustomerName: "Acme Stores"},
		&models.Customer{Name: "CUST-002", CustomerName: "Bora Traders"},
		&models.GLEntry{Account: "Debtors", PartyType: models.PartyTypeCustomer, Party: "CUST-001", Debit: dec("12000"), Credit: dec("0")},
		&models.GLEntry{Account: "Debtors", PartyType: models.PartyTypeCustomer, Party: "CUST-001", Debit: dec("0"), Credit: dec("2000")},
		&models.GLEntry{Account: "Debtors", PartyType: models.PartyTypeCustomer, Party: "CUST-001", Debit: dec("50000"), Credit: dec("0"), IsCancelled: true},
		&models.GLEntry{Account: "Debtors", PartyType: models.PartyTypeCustomer, Party: "CUST-002", Debit: dec("0"), Credit: dec("3500")},
		&models.GLEntry{Account: "Debtors", PartyType: "Supplier", Party: "CUST-002", Debit: dec("99999"), Credit: dec("0")},
	)

	svc := NewCustomerService(db, NewSettingsService(db, "UGX"))
	customers, err := svc.Customers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []CustomerSummary{
		{ID: "CUST-001", Name: "Acme Stores", AdvanceBalance: "UGX 0", TotalDue: "UGX 10,000"},
		{ID: "CUST-002", Name: "Bora Traders", AdvanceBalance: "UGX 3,500", TotalDue: "UGX 0"},
	}, customers)
}

func seedOpenInvoice(t *testing.T, db *gorm.DB, name, customer string, outstanding string, docStatus int) {
	t.Helper()
	mustCreate(t, db, &models.SalesInvoice{
		Name:              name,
		Customer:          customer,
		PostingDate:       models.Today(),
		GrandTotal:        dec(outstanding).Abs(),
		OutstandingAmount: dec(outstanding),
		DocStatus:         docStatus,
	})
}

func TestCustomerService_CustomersWithBalances(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	mustCreate(t, db,
		&models.Customer{Name: "C-A", CustomerName: "Alpha"},
		&models.Customer{Name: "C-B", CustomerName: "Beta"},
		&models.Customer{Name: "C-C", CustomerName: "Gamma"},
		&models.Customer{Name: "C-D", CustomerName: "Delta"},
		&models.Customer{Name: "C-E", CustomerName: "Epsilon"},
	)
	seedOpenInvoice(t, db, "INV-1", "C-A", "1000", models.DocStatusSubmitted)
	seedOpenInvoice(t, db, "INV-2", "C-A", "2500", models.DocStatusSubmitted)
	seedOpenInvoice(t, db, "INV-3", "C-A", "-300", models.DocStatusSubmitted)
	seedOpenInvoice(t, db, "INV-4", "C-B", "0", models.DocStatusSubmitted)
	seedOpenInvoice(t, db, "INV-5", "C-C", "700", models.DocStatusSubmitted)
	seedOpenInvoice(t, db, "INV-6", "C-D", "900", models.DocStatusDraft)
	seedOpenInvoice(t, db, "INV-7", "C-E", "-150", models.DocStatusSubmitted)

	linkAddress(t, db, "C-A", "C-A-Billing", "Plot 12 Kampala Rd", false)
	linkAddress(t, db, "C-C", "C-C-Old", "Closed Shop", true)
	linkContact(t, db, "C-A", "Alpha Owner", "+256772000111", true)
	linkContact(t, db, "C-A", "Alpha Clerk", "+256772000222", false)

	svc := NewCustomerService(db, NewSettingsService(db, "UGX"))

	t.Run("aggregates open submitted invoices", func(t *testing.T) {
		page, err := svc.CustomersWithBalances(ctx, 1, 20)
		require.NoError(t, err)

		assert.Equal(t, []CustomerWithBalance{
			{CustomerName: "Alpha", Address: "Plot 12 Kampala Rd", Contact: "+256772000111", TotalDebits: "UGX 3,500", TotalCredits: "UGX 300"},
			{CustomerName: "Epsilon", Address: "", Contact: "", TotalDebits: "UGX 0", TotalCredits: "UGX 150"},
			{CustomerName: "Gamma", Address: "", Contact: "", TotalDebits: "UGX 700", TotalCredits: "UGX 0"},
		}, page.Customers)
		assert.Nil(t, page.Pagination.PreviousPage)
		assert.Nil(t, page.Pagination.NextPage)
	})

	t.Run("pages", func(t *testing.T) {
		first, err := svc.CustomersWithBalances(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, first.Customers, 2)
		require.NotNil(t, first.Pagination.NextPage)
		assert.Equal(t, 2, *first.Pagination.NextPage)
		assert.Nil(t, first.Pagination.PreviousPage)

		second, err := svc.CustomersWithBalances(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, second.Customers, 1)
		assert.Equal(t, "Gamma", second.Customers[0].CustomerName)
		assert.Nil(t, second.Pagination.NextPage)
		require.NotNil(t, second.Pagination.PreviousPage)
		assert.Equal(t, 1, *second.Pagination.PreviousPage)
	})

	t.Run("full last page still advertises a next page", func(t *testing.T) {
		page, err := svc.CustomersWithBalances(ctx, 1, 3)
		require.NoError(t, err)
		require.Len(t, page.Customers, 3)
		require.NotNil(t, page.Pagination.NextPage)

		next, err := svc.CustomersWithBalances(ctx, *page.Pagination.NextPage, 3)
		require.NoError(t, err)
		assert.Empty(t, next.Customers)
		assert.Nil(t, next.Pagination.NextPage)
	})

	t.Run("rejects invalid paging", func(t *testing.T) {
		_, err := svc.CustomersWithBalances(ctx, 0, 20)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.CustomersWithBalances(ctx, 1, 0)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestPageInfo(t *testing.T) {
	for _, tt := range []struct {
		page, length, rows int
		prev, next         *int
	}{
		{1, 20, 5, nil, nil},
		{1, 20, 20, nil, intPtr(2)},
		{3, 10, 10, intPtr(2), intPtr(4)},
		{3, 10, 0, intPtr(2), nil},
	} {
		t.Run(fmt.Sprintf("page %d rows %d of %d", tt.page, tt.rows, tt.length), func(t *testing.T) {
			info := pageInfo(tt.page, tt.length, tt.rows)
			assert.Equal(t, tt.prev, info.PreviousPage)
			assert.Equal(t, tt.next, info.NextPage)
		})
	}
}

func intPtr(n int) *int {
	return &n
}
