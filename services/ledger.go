package services

import (
	"errors"
	"fmt"

	"retail-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate row-locks the next read. SQLite serializes writers on its own and
// rejects the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// nextName issues the next document name for prefix, e.g. ACC-SINV-2024-00001.
// It must run inside the transaction that inserts the document.
func nextName(tx *gorm.DB, prefix string) (string, error) {
	var series models.NamingSeries
	err := forUpdate(tx).Where("prefix = ?", prefix).First(&series).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		series = models.NamingSeries{Prefix: prefix, Current: 1}
		if err := tx.Create(&series).Error; err != nil {
			return "", fmt.Errorf("start naming series %s: %w", prefix, err)
		}
	case err != nil:
		return "", fmt.Errorf("load naming series %s: %w", prefix, err)
	default:
		series.Current++
		err := tx.Model(&models.NamingSeries{}).
			Where("prefix = ?", prefix).
			Update("current_value", series.Current).Error
		if err != nil {
			return "", fmt.Errorf("advance naming series %s: %w", prefix, err)
		}
	}
	return fmt.Sprintf("%s%05d", prefix, series.Current), nil
}

type glPosting struct {
	Account string
	Party   string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

type voucher struct {
	Type    string
	No      string
	Date    models.Date
	Remarks string
}

// postGL writes one ledger row per posting. Debits and credits must balance.
func postGL(tx *gorm.DB, v voucher, postings ...glPosting) error {
	debit, credit := decimal.Zero, decimal.Zero
	for _, p := range postings {
		debit = debit.Add(p.Debit)
		credit = credit.Add(p.Credit)
	}
	if !debit.Equal(credit) {
		return fmt.Errorf("unbalanced ledger postings for %s %s: debit %s, credit %s", v.Type, v.No, debit, credit)
	}

	entries := make([]models.GLEntry, 0, len(postings))
	for _, p := range postings {
		entry := models.GLEntry{
			PostingDate: v.Date,
			Account:     p.Account,
			Debit:       p.Debit,
			Credit:      p.Credit,
			VoucherType: v.Type,
			VoucherNo:   v.No,
			Remarks:     v.Remarks,
		}
		if p.Party != "" {
			entry.PartyType = models.PartyTypeCustomer
			entry.Party = p.Party
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil
	}
	if err := tx.Create(&entries).Error; err != nil {
		return fmt.Errorf("post ledger entries for %s: %w", v.No, err)
	}
	return nil
}
