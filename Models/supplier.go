package Models

import (
	"time"

	"gorm.io/gorm"
)

type Supplier struct {
	gorm.Model
	Name          string `json:"name" gorm:"uniqueIndex;size:200;not null"`
	ContactPerson string `json:"contact_person" gorm:"size:100"`
	Phone         string `json:"phone" gorm:"size:20"`
	Email         string `json:"email" gorm:"size:255"`
	Address       string `json:"address" gorm:"type:text"`
	GSTNumber     string `json:"gst_number" gorm:"size:50"`
}

type PurchaseOrder struct {
	gorm.Model
	OrderID    string  `json:"order_id" gorm:"uniqueIndex;size:100;not null"`
	SupplierID uint    `json:"supplier_id" gorm:"not null;index"`
	ProductID  uint    `json:"product_id" gorm:"not null;index"`
	Quantity   int     `json:"quantity" gorm:"not null;default:1"`
	CostPrice  float64 `json:"cost_price" gorm:"type:decimal(10,2);not null"`
	Total      float64 `json:"total" gorm:"type:decimal(10,2);not null"`
	Received   bool    `json:"received" gorm:"default:false"`

	Supplier Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Product  Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// NewPurchaseOrderID builds a PO-<14-digit timestamp>-<6 hex chars> identifier.
func NewPurchaseOrderID() string {
	return "PO-" + time.Now().Format("20060102150405") + "-" + randomSuffix()
}

// BeforeSave keeps the total in line with quantity and cost price on every
// write, updates included.
func (po *PurchaseOrder) BeforeSave(tx *gorm.DB) error {
	po.Total = round2(float64(po.Quantity) * po.CostPrice)
	return nil
}

// CreatePurchaseOrder records the order and applies the receipt to the
// product: stock goes up by the ordered quantity and the cost price is
// overwritten with the order's. The receipt happens exactly once, marked by
// the received flag; later edits to the order never touch stock again.
func CreatePurchaseOrder(db *gorm.DB, po *PurchaseOrder) error {
	var supplier Supplier
	if err := db.First(&supplier, po.SupplierID).Error; err != nil {
		return err
	}
	var product Product
	if err := db.First(&product, po.ProductID).Error; err != nil {
		return err
	}

	po.OrderID = NewPurchaseOrderID()
	po.Received = true

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(po).Error; err != nil {
			return err
		}
		return tx.Model(&Product{}).Where("id = ?", po.ProductID).
			UpdateColumns(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", po.Quantity),
				"cost_price": po.CostPrice,
			}).Error
	})
	if err != nil {
		return err
	}

	db.Preload("Supplier").Preload("Product").First(po, po.ID)
	return nil
}
