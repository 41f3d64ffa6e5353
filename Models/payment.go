package Models

import (
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

type Payment struct {
	gorm.Model
	BillID        *uint   `json:"bill_id" gorm:"uniqueIndex"`
	TransactionID string  `json:"transaction_id" gorm:"uniqueIndex;size:255;not null"`
	Amount        float64 `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status        string  `json:"status" gorm:"size:20;default:pending"`

	Bill *Bill `json:"bill,omitempty" gorm:"foreignKey:BillID"`
}

// ValidPaymentStatus reports whether status is one of the gateway statuses.
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentSucceeded, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// BillStatusForPayment maps a gateway payment status onto the simplified
// bill payment status.
func BillStatusForPayment(status string) string {
	switch status {
	case PaymentSucceeded:
		return PaymentStatusPaid
	case PaymentFailed:
		return PaymentStatusFailed
	default:
		return PaymentStatusPending
	}
}

// ApplyPaymentStatus writes a new status onto the payment and, when the
// status actually changed and a bill is linked, mirrors the mapped status
// onto that bill. Both writes commit or roll back together.
func ApplyPaymentStatus(db *gorm.DB, payment *Payment, newStatus string) error {
	previous := payment.Status
	payment.Status = newStatus

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		if newStatus != previous && payment.BillID != nil {
			return tx.Model(&Bill{}).Where("id = ?", *payment.BillID).
				Update("payment_status", BillStatusForPayment(newStatus)).Error
		}
		return nil
	})
}

// LinkPaymentToBill attaches an unlinked payment to a bill and brings the
// bill's payment status in line with the payment's current state.
func LinkPaymentToBill(db *gorm.DB, payment *Payment, billID uint) error {
	var bill Bill
	if err := db.First(&bill, billID).Error; err != nil {
		return err
	}

	payment.BillID = &bill.ID
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return tx.Model(&bill).Update("payment_status", BillStatusForPayment(payment.Status)).Error
	})
}
