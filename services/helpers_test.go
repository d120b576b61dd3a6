package services

import (
	"testing"

	"retail-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema. One
// connection keeps every query on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, values ...interface{}) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, db.Create(v).Error)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func linkAddress(t *testing.T, db *gorm.DB, customer, name, line1 string, disabled bool) {
	t.Helper()
	mustCreate(t, db,
		&models.Address{Name: name, AddressLine1: line1, Disabled: disabled},
		&models.DynamicLink{Parent: name, ParentType: "Address", LinkDoctype: "Customer", LinkName: customer},
	)
}

func linkContact(t *testing.T, db *gorm.DB, customer, name, mobile string, primary bool) {
	t.Helper()
	mustCreate(t, db,
		&models.Contact{Name: name, FirstName: name, MobileNo: mobile, IsPrimaryContact: primary},
		&models.DynamicLink{Parent: name, ParentType: "Contact", LinkDoctype: "Customer", LinkName: customer},
	)
}
