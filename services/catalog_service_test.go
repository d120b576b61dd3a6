package services

import (
	"context"
	"testing"

	"retail-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ItemPrices(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db,
		&models.PriceList{Name: "Wholesale", Selling: true},
		&models.PriceList{Name: "Retail", Selling: true},
		&models.PriceList{Name: "Buying", Buying: true},
		&models.ItemPrice{Name: "IP-1", ItemCode: "SUGAR", PriceList: "Wholesale", PriceListRate: dec("4200"), UOM: "Kg"},
		&models.ItemPrice{Name: "IP-2", ItemCode: "SUGAR", PriceList: "Retail", PriceListRate: dec("4500"), UOM: "Kg"},
		&models.ItemPrice{Name: "IP-3", ItemCode: "SUGAR", PriceList: "Buying", PriceListRate: dec("3900"), UOM: "Kg"},
	)

	rows, err := NewCatalogService(db).ItemPrices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []ItemPriceRow{
		{ItemCode: "SUGAR", Name: "IP-2", UOM: "Kg", Price: 4500},
		{ItemCode: "SUGAR", Name: "IP-1", UOM: "Kg", Price: 4200},
	}, rows)
}

func TestCatalogService_Items(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db,
		&models.Item{Name: "RICE", ItemCode: "RICE", ItemName: "Rice", StockUOM: "Kg"},
		&models.Item{Name: "SOAP", ItemCode: "SOAP", ItemName: "Soap", StockUOM: "Nos"},
		&models.Bin{ItemCode: "RICE", Warehouse: "Stores", ActualQty: dec("10")},
		&models.Bin{ItemCode: "RICE", Warehouse: "Shop", ActualQty: dec("5")},
	)

	items, err := NewCatalogService(db).Items(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []ItemStock{
		{ItemName: "Rice", ItemCode: "RICE", RemainingStock: "15 Kg"},
		{ItemName: "Soap", ItemCode: "SOAP", RemainingStock: "0 Nos"},
	}, items)
}

func TestCatalogService_Empty(t *testing.T) {
	svc := NewCatalogService(newTestDB(t))

	prices, err := svc.ItemPrices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, prices)
	assert.Empty(t, prices)

	items, err := svc.Items(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
