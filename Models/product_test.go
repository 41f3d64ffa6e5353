package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCodeGenerated(t *testing.T) {
	db := newTestDB(t)

	first := seedProduct(t, db, "Salt", 10, 5, 12)
	second := seedProduct(t, db, "Pepper", 10, 8, 20)

	assert.Equal(t, "P-0001", first.Code)
	assert.Equal(t, "P-0002", second.Code)
}

func TestProductCodeKeptWhenProvided(t *testing.T) {
	db := newTestDB(t)

	product := &Product{Code: "LEGACY-9", Name: "Imported", SellingPrice: 10}
	require.NoError(t, db.Create(product).Error)
	assert.Equal(t, "LEGACY-9", product.Code)
}

func TestDecrementStock(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Eggs", 6, 4, 8)

	require.NoError(t, DecrementStock(db, product.ID, 4))

	var reloaded Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.Quantity)

	// Taking more than remains must fail and leave the count alone.
	err := DecrementStock(db, product.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.Quantity)

	// Down to exactly zero is allowed.
	require.NoError(t, DecrementStock(db, product.ID, 2))
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Zero(t, reloaded.Quantity)
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	err := DecrementStock(db, 404, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestReceiveStock(t *testing.T) {
	db := newTestDB(t)
	staff := seedCashier(t, db, "manager@test.local")
	product := seedProduct(t, db, "Flour", 3, 20, 35)

	entry, err := ReceiveStock(db, product.ID, 12, "weekly restock", staff.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, entry.QuantityAdded)
	assert.Equal(t, "weekly restock", entry.Note)

	var reloaded Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 15, reloaded.Quantity)
}

func TestReceiveStockUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	staff := seedCashier(t, db, "manager@test.local")

	_, err := ReceiveStock(db, 404, 5, "", staff.ID)
	require.Error(t, err)

	var entries int64
	db.Model(&StockEntry{}).Count(&entries)
	assert.Zero(t, entries)
}
