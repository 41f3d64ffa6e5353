package Models

import (
	"fmt"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

type Product struct {
	gorm.Model
	Code              string  `json:"code" gorm:"uniqueIndex;size:50"`
	Name              string  `json:"name" gorm:"size:200;not null"`
	Category          string  `json:"category" gorm:"size:100;index"`
	Manufacturer      string  `json:"manufacturer" gorm:"size:100;index"`
	SupplierID        *uint   `json:"supplier_id"`
	Quantity          int     `json:"quantity" gorm:"not null;default:0"`
	CostPrice         float64 `json:"cost_price" gorm:"type:decimal(10,2);default:0"`
	SellingPrice      float64 `json:"selling_price" gorm:"type:decimal(10,2);not null"`
	LowStockThreshold int     `json:"low_stock_threshold" gorm:"default:5"`
	ImagePath         string  `json:"image_path" gorm:"size:255"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

// BeforeCreate assigns the generated product code. The code is set once and
// never rewritten afterwards.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Code != "" {
		return nil
	}
	var maxID int64
	if err := tx.Model(&Product{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return err
	}
	p.Code = fmt.Sprintf("P-%04d", maxID+1)
	return nil
}

// DecrementStock subtracts qty from the product's stock with a conditional
// update, so two concurrent bills cannot both pass a stock check and then
// overdraw. Zero affected rows means the stock was short (or the product is
// gone) and the caller must roll back.
func DecrementStock(tx *gorm.DB, productID uint, qty int) error {
	result := tx.Model(&Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// StockEntry is a manual, non-purchase-order stock adjustment. The delta is
// applied exactly once, when the entry is created.
type StockEntry struct {
	gorm.Model
	ProductID     uint   `json:"product_id" gorm:"not null;index"`
	QuantityAdded int    `json:"quantity_added" gorm:"not null"`
	Note          string `json:"note" gorm:"type:text"`
	AddedByID     uint   `json:"added_by_id"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	AddedBy User    `json:"added_by,omitempty" gorm:"foreignKey:AddedByID"`
}

// ReceiveStock records a stock entry and adds its quantity to the product,
// both inside one transaction.
func ReceiveStock(db *gorm.DB, productID uint, qty int, note string, addedByID uint) (*StockEntry, error) {
	var product Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, err
	}

	entry := &StockEntry{
		ProductID:     productID,
		QuantityAdded: qty,
		Note:          note,
		AddedByID:     addedByID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&Product{}).Where("id = ?", productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
	})
	if err != nil {
		return nil, err
	}

	db.Preload("Product").First(entry, entry.ID)
	return entry, nil
}
