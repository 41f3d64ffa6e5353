package Models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewBillIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^BILL-\d{14}-[0-9a-f]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewBillID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "bill IDs should not repeat: %s", id)
		seen[id] = true
	}
}

func TestCreateBillDecrementsStockAndSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")
	product := seedProduct(t, db, "Cola 500ml", 10, 20, 50)

	bill, err := CreateBill(db, cashier.ID, CreateBillInput{
		Items:    []BillLineInput{{ProductID: product.ID, Qty: 2, Price: 50}},
		Subtotal: 100,
		Tax:      10,
		Total:    110,
	})
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusPending, bill.PaymentStatus)
	assert.Equal(t, 100.0, bill.Subtotal)
	assert.Equal(t, 110.0, bill.Total)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 2, bill.Items[0].Qty)
	assert.Equal(t, 50.0, bill.Items[0].Price)

	var reloaded Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 8, reloaded.Quantity)

	// Raising the catalog price later must not touch the sold line.
	require.NoError(t, db.Model(&reloaded).Update("selling_price", 75).Error)
	var item BillItem
	require.NoError(t, db.First(&item, bill.Items[0].ID).Error)
	assert.Equal(t, 50.0, item.Price)
}

func TestCreateBillInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")
	inStock := seedProduct(t, db, "Bread", 10, 10, 30)
	short := seedProduct(t, db, "Milk", 4, 15, 40)

	_, err := CreateBill(db, cashier.ID, CreateBillInput{
		Items: []BillLineInput{
			{ProductID: inStock.ID, Qty: 3, Price: 30},
			{ProductID: short.ID, Qty: 10, Price: 40},
		},
		Subtotal: 490,
		Total:    490,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The first line's decrement must have been undone. Each lookup gets its
	// own dest: a reused struct would smuggle the previous primary key into
	// the next query's conditions.
	var first, second Product
	require.NoError(t, db.First(&first, inStock.ID).Error)
	assert.Equal(t, 10, first.Quantity)
	require.NoError(t, db.First(&second, short.ID).Error)
	assert.Equal(t, 4, second.Quantity)

	var bills int64
	db.Model(&Bill{}).Count(&bills)
	assert.Zero(t, bills)
	var items int64
	db.Model(&BillItem{}).Count(&items)
	assert.Zero(t, items)
}

func TestCreateBillUnknownProductRollsBack(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")
	product := seedProduct(t, db, "Soap", 5, 5, 12)

	_, err := CreateBill(db, cashier.ID, CreateBillInput{
		Items: []BillLineInput{
			{ProductID: product.ID, Qty: 1, Price: 12},
			{ProductID: 9999, Qty: 1, Price: 10},
		},
		Subtotal: 22,
		Total:    22,
	})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var p Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 5, p.Quantity)
}

func TestCreateBillRejectsTotalMismatch(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")
	product := seedProduct(t, db, "Rice 1kg", 20, 40, 60)

	tests := []struct {
		name     string
		subtotal float64
		tax      float64
		discount float64
		total    float64
	}{
		{"subtotal does not match lines", 100, 0, 0, 100},
		{"total ignores tax", 120, 12, 0, 120},
		{"total ignores discount", 120, 0, 20, 120},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateBill(db, cashier.ID, CreateBillInput{
				Items:    []BillLineInput{{ProductID: product.ID, Qty: 2, Price: 60}},
				Subtotal: tc.subtotal,
				Tax:      tc.tax,
				Discount: tc.discount,
				Total:    tc.total,
			})
			assert.ErrorIs(t, err, ErrTotalMismatch)
		})
	}

	// Stock untouched by any of the rejected attempts.
	var p Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 20, p.Quantity)
}

func TestCreateBillRejectsEmptyBill(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")

	_, err := CreateBill(db, cashier.ID, CreateBillInput{})
	assert.ErrorIs(t, err, ErrEmptyBill)
}

func TestCreateBillAccruesLoyalty(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")
	product := seedProduct(t, db, "TV", 100, 70000, 95000)
	customer := seedCustomer(t, db, "Asha", "9000000001")

	// 95000 / 100 = 950 points, still bronze.
	_, err := CreateBill(db, cashier.ID, CreateBillInput{
		CustomerID: &customer.ID,
		Items:      []BillLineInput{{ProductID: product.ID, Qty: 1, Price: 95000}},
		Subtotal:   95000,
		Total:      95000,
	})
	require.NoError(t, err)

	var loyalty CustomerLoyalty
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&loyalty).Error)
	assert.Equal(t, 950, loyalty.AvailablePoints)
	assert.Equal(t, 950, loyalty.LifetimePoints)
	assert.Equal(t, TierBronze, loyalty.Tier)

	// 5150 / 100 = 51 more points, crossing into silver. The fraction is
	// dropped, not rounded.
	cheap := seedProduct(t, db, "Stand", 10, 3000, 5150)
	_, err = CreateBill(db, cashier.ID, CreateBillInput{
		CustomerID: &customer.ID,
		Items:      []BillLineInput{{ProductID: cheap.ID, Qty: 1, Price: 5150}},
		Subtotal:   5150,
		Total:      5150,
	})
	require.NoError(t, err)

	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&loyalty).Error)
	assert.Equal(t, 1001, loyalty.LifetimePoints)
	assert.Equal(t, 1001, loyalty.AvailablePoints)
	assert.Equal(t, TierSilver, loyalty.Tier)
}

func TestCreateBillWithoutCustomerSkipsLoyalty(t *testing.T) {
	db := newTestDB(t)
	cashier := seedCashier(t, db, "cashier@test.local")
	product := seedProduct(t, db, "Pen", 50, 2, 10)

	_, err := CreateBill(db, cashier.ID, CreateBillInput{
		Items:    []BillLineInput{{ProductID: product.ID, Qty: 1, Price: 10}},
		Subtotal: 10,
		Total:    10,
	})
	require.NoError(t, err)

	var count int64
	db.Model(&CustomerLoyalty{}).Count(&count)
	assert.Zero(t, count)
}
