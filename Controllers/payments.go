package Controllers

import (
	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PaymentController handles payment API endpoints
type PaymentController struct {
	DB *gorm.DB
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// GetPayments lists payments, newest first.
func (c *PaymentController) GetPayments(ctx *fiber.Ctx) error {
	var payments []Models.Payment
	result := c.DB.Preload("Bill").Order("created_at DESC").Find(&payments)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}
	return ctx.JSON(payments)
}

type CreatePaymentInput struct {
	TransactionID string  `json:"transaction_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Status        string  `json:"status"`
	BillID        *uint   `json:"bill_id"`
}

// CreatePayment records a gateway transaction. When a bill is attached the
// bill's payment status is brought in line in the same transaction.
func (c *PaymentController) CreatePayment(ctx *fiber.Ctx) error {
	var input CreatePaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	status := input.Status
	if status == "" {
		status = Models.PaymentPending
	}
	if !Models.ValidPaymentStatus(status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payment status"})
	}

	if input.BillID != nil {
		var bill Models.Bill
		if result := c.DB.First(&bill, *input.BillID); result.Error != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bill not found"})
		}
	}

	payment := Models.Payment{
		TransactionID: input.TransactionID,
		Amount:        input.Amount,
		Status:        status,
		BillID:        input.BillID,
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if payment.BillID != nil {
			return tx.Model(&Models.Bill{}).Where("id = ?", *payment.BillID).
				Update("payment_status", Models.BillStatusForPayment(status)).Error
		}
		return nil
	})
	if err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A payment with this transaction ID already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(payment)
}

type UpdatePaymentInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdatePaymentStatus writes a new gateway status and mirrors the mapped
// status onto the linked bill when the status changed.
// PATCH /api/payments/:transaction_id
func (c *PaymentController) UpdatePaymentStatus(ctx *fiber.Ctx) error {
	var payment Models.Payment
	if result := c.DB.Where("transaction_id = ?", ctx.Params("transaction_id")).First(&payment); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var input UpdatePaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !Models.ValidPaymentStatus(input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payment status"})
	}

	if err := Models.ApplyPaymentStatus(c.DB, &payment, input.Status); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return ctx.JSON(payment)
}

type LinkBillInput struct {
	BillID uint `json:"bill_id" validate:"required"`
}

// LinkBill attaches an unlinked payment to a bill.
// PATCH /api/payments/:transaction_id/link_bill
func (c *PaymentController) LinkBill(ctx *fiber.Ctx) error {
	var payment Models.Payment
	if result := c.DB.Where("transaction_id = ?", ctx.Params("transaction_id")).First(&payment); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var input LinkBillInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.BillID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bill_id is required"})
	}

	if err := Models.LinkPaymentToBill(c.DB, &payment, input.BillID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bill not found"})
		}
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This bill already has a payment linked"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to link payment"})
	}

	return ctx.JSON(fiber.Map{"message": "Bill linked successfully", "data": payment})
}
