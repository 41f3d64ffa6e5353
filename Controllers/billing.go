package Controllers

import (
	"errors"
	"fmt"
	"strconv"

	"Nova/Invoice"
	"Nova/Models"
	"Nova/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BillController handles billing API endpoints
type BillController struct {
	DB *gorm.DB
}

// NewBillController creates a new BillController
func NewBillController(db *gorm.DB) *BillController {
	return &BillController{DB: db}
}

// scoped narrows bill queries to the acting user: cashiers only ever see
// their own bills, managers and admins see everything.
func (c *BillController) scoped(ctx *fiber.Ctx) *gorm.DB {
	query := c.DB.Model(&Models.Bill{})
	if user, ok := middleware.CurrentUser(ctx); ok && !user.Elevated() {
		query = query.Where("cashier_id = ?", user.ID)
	}
	return query
}

// GetBills lists bills with pagination
// GET /api/bills?page=1&limit=10
func (c *BillController) GetBills(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	c.scoped(ctx).Count(&total)

	var bills []Models.Bill
	err := c.scoped(ctx).Preload("Items.Product").Preload("Customer").Preload("Cashier").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&bills).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bills"})
	}

	return ctx.JSON(fiber.Map{
		"data": bills,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetBill retrieves a single bill
func (c *BillController) GetBill(ctx *fiber.Ctx) error {
	bill, status, err := c.loadBill(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(bill)
}

// CreateBill creates a bill with its items, decrements stock and accrues
// loyalty points, all inside one transaction.
// POST /api/bills
func (c *BillController) CreateBill(ctx *fiber.Ctx) error {
	var input Models.CreateBillInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	user, _ := middleware.CurrentUser(ctx)

	bill, err := Models.CreateBill(c.DB, user.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, Models.ErrInsufficientStock):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Insufficient stock",
				"message": "One of the bill lines requests more units than are in stock",
			})
		case errors.Is(err, Models.ErrTotalMismatch):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Total mismatch",
				"message": "total must equal subtotal + tax - discount, with subtotal matching the lines",
			})
		case errors.Is(err, Models.ErrEmptyBill):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bill must contain at least one item"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product or customer not found"})
		case Models.IsDuplicateKey(err):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Bill identifier collision, retry the request"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create bill", "message": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Bill created successfully",
		"data":    bill,
	})
}

// MarkPaid flags a bill as paid. Used for cash sales that never touch a
// payment gateway.
// PUT /api/bills/:id/mark-paid
func (c *BillController) MarkPaid(ctx *fiber.Ctx) error {
	bill, status, err := c.loadBill(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(bill).Update("payment_status", Models.PaymentStatusPaid).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bill"})
	}

	return ctx.JSON(fiber.Map{"message": "Bill marked as paid", "data": bill})
}

// InvoicePDF renders the invoice as a PDF download. Only paid bills can be
// invoiced.
// GET /api/bills/:id/invoice
func (c *BillController) InvoicePDF(ctx *fiber.Ctx) error {
	bill, status, err := c.loadBill(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	if bill.PaymentStatus != Models.PaymentStatusPaid {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invoice is only available once the bill is paid",
		})
	}

	pdf, err := Invoice.Render(bill)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render invoice"})
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="invoice_%s.pdf"`, bill.BillID))
	return ctx.Send(pdf)
}

// InvoiceHTML renders a printable invoice view with the same paid-only gate
// as the PDF.
// GET /api/bills/:id/invoice/html
func (c *BillController) InvoiceHTML(ctx *fiber.Ctx) error {
	bill, status, err := c.loadBill(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	if bill.PaymentStatus != Models.PaymentStatusPaid {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invoice is only available once the bill is paid",
		})
	}

	return ctx.Render("invoice", fiber.Map{
		"Bill":  bill,
		"Lines": Invoice.Lines(bill),
	})
}

func (c *BillController) loadBill(ctx *fiber.Ctx) (*Models.Bill, int, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid bill ID")
	}

	var bill Models.Bill
	result := c.scoped(ctx).Preload("Items.Product").Preload("Customer").Preload("Cashier").
		Where("bills.id = ?", id).First(&bill)
	if result.Error != nil {
		return nil, fiber.StatusNotFound, errors.New("Bill not found")
	}
	return &bill, fiber.StatusOK, nil
}
