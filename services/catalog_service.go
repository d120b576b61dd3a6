package services

import (
	"context"
	"fmt"

	"retail-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type ItemPriceRow struct {
	ItemCode string  `json:"item_code"`
	Name     string  `json:"name"`
	UOM      string  `json:"uom"`
	Price    float64 `json:"price"`
}

// ItemPrices lists the item prices of every selling price list, grouped by
// price list name. An item priced in several lists appears once per list.
func (s *CatalogService) ItemPrices(ctx context.Context) ([]ItemPriceRow, error) {
	db := s.db.WithContext(ctx)

	var lists []models.PriceList
	if err := db.Where("selling = ?", true).Order("name").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("load price lists: %w", err)
	}

	rows := make([]ItemPriceRow, 0)
	for _, list := range lists {
		var prices []models.ItemPrice
		if err := db.Where("price_list = ?", list.Name).Order("name").Find(&prices).Error; err != nil {
			return nil, fmt.Errorf("load prices for %s: %w", list.Name, err)
		}
		for _, p := range prices {
			rows = append(rows, ItemPriceRow{
				ItemCode: p.ItemCode,
				Name:     p.Name,
				UOM:      p.UOM,
				Price:    p.PriceListRate.InexactFloat64(),
			})
		}
	}
	return rows, nil
}

type ItemStock struct {
	ItemName       string `json:"item_name"`
	ItemCode       string `json:"item_code"`
	RemainingStock string `json:"remaining_stock"`
}

// Items returns every item with its stock summed over all warehouses.
func (s *CatalogService) Items(ctx context.Context) ([]ItemStock, error) {
	db := s.db.WithContext(ctx)

	var items []models.Item
	if err := db.Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	result := make([]ItemStock, 0, len(items))
	for _, item := range items {
		qty, err := s.stockQty(db, item.ItemCode)
		if err != nil {
			return nil, err
		}
		result = append(result, ItemStock{
			ItemName:       item.ItemName,
			ItemCode:       item.ItemCode,
			RemainingStock: fmt.Sprintf("%s %s", qty.String(), item.StockUOM),
		})
	}
	return result, nil
}

func (s *CatalogService) stockQty(db *gorm.DB, itemCode string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&models.Bin{}).
		Select("SUM(actual_qty)").
		Where("item_code = ?", itemCode).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock for %s: %w", itemCode, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
