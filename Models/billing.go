package Models

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// One loyalty point is earned per 100 currency units of bill total.
const pointsDivisor = 100

type Bill struct {
	gorm.Model
	BillID        string  `json:"bill_id" gorm:"uniqueIndex;size:100;not null"`
	CashierID     uint    `json:"cashier_id" gorm:"index"`
	CustomerID    *uint   `json:"customer_id"`
	Subtotal      float64 `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	Tax           float64 `json:"tax" gorm:"type:decimal(12,2);not null"`
	Discount      float64 `json:"discount" gorm:"type:decimal(12,2);default:0"`
	Total         float64 `json:"total" gorm:"type:decimal(12,2);not null"`
	PaymentStatus string  `json:"payment_status" gorm:"size:20;default:pending"`
	PaymentMethod string  `json:"payment_method" gorm:"size:20"`

	Cashier  User       `json:"cashier,omitempty" gorm:"foreignKey:CashierID"`
	Customer *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []BillItem `json:"items" gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

type BillItem struct {
	gorm.Model
	BillID    uint    `json:"bill_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Qty       int     `json:"qty" gorm:"not null"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null"` // price at time of sale

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type BillLineInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type CreateBillInput struct {
	CustomerID    *uint           `json:"customer_id"`
	Items         []BillLineInput `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64         `json:"subtotal" validate:"gte=0"`
	Tax           float64         `json:"tax" validate:"gte=0"`
	Discount      float64         `json:"discount" validate:"gte=0"`
	Total         float64         `json:"total" validate:"gte=0"`
	PaymentMethod string          `json:"payment_method"`
}

// NewBillID builds a BILL-<14-digit timestamp>-<6 hex chars> identifier.
func NewBillID() string {
	return "BILL-" + time.Now().Format("20060102150405") + "-" + randomSuffix()
}

func randomSuffix() string {
	buf := make([]byte, 3)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateBill persists a bill, its line items, the stock decrements and the
// customer's loyalty accrual as one transaction. Any failure rolls the whole
// thing back.
//
// Totals are not trusted: the subtotal is recomputed from the lines and the
// submitted total must equal subtotal + tax - discount.
func CreateBill(db *gorm.DB, cashierID uint, in CreateBillInput) (*Bill, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyBill
	}

	var computedSubtotal float64
	for _, line := range in.Items {
		computedSubtotal += float64(line.Qty) * line.Price
	}
	computedSubtotal = round2(computedSubtotal)
	if math.Abs(computedSubtotal-in.Subtotal) > 0.005 ||
		math.Abs(in.Total-round2(computedSubtotal+in.Tax-in.Discount)) > 0.005 {
		return nil, ErrTotalMismatch
	}

	bill := &Bill{
		BillID:        NewBillID(),
		CashierID:     cashierID,
		CustomerID:    in.CustomerID,
		Subtotal:      computedSubtotal,
		Tax:           round2(in.Tax),
		Discount:      round2(in.Discount),
		Total:         round2(in.Total),
		PaymentStatus: PaymentStatusPending,
		PaymentMethod: in.PaymentMethod,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(bill).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, line := range in.Items {
		var product Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := DecrementStock(tx, product.ID, line.Qty); err != nil {
			tx.Rollback()
			return nil, err
		}

		item := BillItem{
			BillID:    bill.ID,
			ProductID: product.ID,
			Qty:       line.Qty,
			Price:     line.Price,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if in.CustomerID != nil {
		if err := accrueLoyalty(tx, *in.CustomerID, bill.Total); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	db.Preload("Items.Product").Preload("Customer.Loyalty").Preload("Cashier").First(bill, bill.ID)
	return bill, nil
}

// accrueLoyalty adds floor(total/100) points to the customer's counters and
// recomputes the tier from the new lifetime total.
func accrueLoyalty(tx *gorm.DB, customerID uint, total float64) error {
	var customer Customer
	if err := tx.First(&customer, customerID).Error; err != nil {
		return err
	}

	var loyalty CustomerLoyalty
	if err := tx.Where(CustomerLoyalty{CustomerID: customerID}).
		Attrs(CustomerLoyalty{Tier: TierBronze}).
		FirstOrCreate(&loyalty).Error; err != nil {
		return err
	}

	points := int(total / pointsDivisor)
	loyalty.AvailablePoints += points
	loyalty.LifetimePoints += points
	loyalty.UpdateTier()

	return tx.Save(&loyalty).Error
}
