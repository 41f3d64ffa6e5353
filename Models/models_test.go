package Models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, qty int, cost, selling float64) *Product {
	t.Helper()
	product := &Product{
		Name:         name,
		Quantity:     qty,
		CostPrice:    cost,
		SellingPrice: selling,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, name, contact string) *Customer {
	t.Helper()
	customer := &Customer{Name: name, ContactNumber: contact}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedCashier(t *testing.T, db *gorm.DB, email string) *User {
	t.Helper()
	user := &User{Email: email, FirstName: "Test", LastName: "Cashier", Role: RoleCashier}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}
