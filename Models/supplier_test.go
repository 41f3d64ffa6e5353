package Models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSupplier(t *testing.T, db *gorm.DB, name string) *Supplier {
	t.Helper()
	supplier := &Supplier{Name: name}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestNewPurchaseOrderIDFormat(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^PO-\d{14}-[0-9a-f]{6}$`), NewPurchaseOrderID())
}

func TestCreatePurchaseOrderAppliesReceipt(t *testing.T) {
	db := newTestDB(t)
	supplier := seedSupplier(t, db, "Acme Traders")
	product := seedProduct(t, db, "Sugar 1kg", 5, 38, 55)

	po := &PurchaseOrder{
		SupplierID: supplier.ID,
		ProductID:  product.ID,
		Quantity:   20,
		CostPrice:  5.00,
	}
	require.NoError(t, CreatePurchaseOrder(db, po))

	assert.NotEmpty(t, po.OrderID)
	assert.True(t, po.Received)
	assert.Equal(t, 100.0, po.Total)

	var reloaded Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 25, reloaded.Quantity)
	assert.Equal(t, 5.00, reloaded.CostPrice)
}

func TestCreatePurchaseOrderUnknownRefs(t *testing.T) {
	db := newTestDB(t)
	supplier := seedSupplier(t, db, "Acme Traders")
	product := seedProduct(t, db, "Sugar 1kg", 5, 38, 55)

	err := CreatePurchaseOrder(db, &PurchaseOrder{SupplierID: 999, ProductID: product.ID, Quantity: 1, CostPrice: 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = CreatePurchaseOrder(db, &PurchaseOrder{SupplierID: supplier.ID, ProductID: 999, Quantity: 1, CostPrice: 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Nothing applied to stock on either failure.
	var reloaded Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 5, reloaded.Quantity)
}

func TestUpdatePurchaseOrderRecomputesTotalOnly(t *testing.T) {
	db := newTestDB(t)
	supplier := seedSupplier(t, db, "Acme Traders")
	product := seedProduct(t, db, "Tea 250g", 0, 60, 90)

	po := &PurchaseOrder{SupplierID: supplier.ID, ProductID: product.ID, Quantity: 10, CostPrice: 60}
	require.NoError(t, CreatePurchaseOrder(db, po))

	po.Quantity = 12
	po.CostPrice = 55
	require.NoError(t, db.Save(po).Error)

	var reloaded PurchaseOrder
	require.NoError(t, db.First(&reloaded, po.ID).Error)
	assert.Equal(t, 660.0, reloaded.Total)

	// Editing an order must not re-apply the receipt.
	var p Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, 60.0, p.CostPrice)
}

func TestSupplierNameUnique(t *testing.T) {
	db := newTestDB(t)
	seedSupplier(t, db, "Acme Traders")

	err := db.Create(&Supplier{Name: "Acme Traders"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}
