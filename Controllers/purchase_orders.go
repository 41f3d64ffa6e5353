package Controllers

import (
	"errors"
	"strconv"

	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PurchaseOrderController handles supplier purchase orders
type PurchaseOrderController struct {
	DB *gorm.DB
}

// NewPurchaseOrderController creates a new PurchaseOrderController
func NewPurchaseOrderController(db *gorm.DB) *PurchaseOrderController {
	return &PurchaseOrderController{DB: db}
}

// GetPurchaseOrders lists purchase orders, newest first.
func (c *PurchaseOrderController) GetPurchaseOrders(ctx *fiber.Ctx) error {
	var orders []Models.PurchaseOrder
	result := c.DB.Preload("Supplier").Preload("Product").Order("created_at DESC").Find(&orders)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve purchase orders"})
	}
	return ctx.JSON(orders)
}

// GetPurchaseOrder retrieves a single purchase order by ID
func (c *PurchaseOrderController) GetPurchaseOrder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	result := c.DB.Preload("Supplier").Preload("Product").First(&order, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}
	return ctx.JSON(order)
}

type PurchaseOrderInput struct {
	SupplierID uint    `json:"supplier_id" validate:"required"`
	ProductID  uint    `json:"product_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	CostPrice  float64 `json:"cost_price" validate:"gte=0"`
}

// CreatePurchaseOrder records a receipt of inventory: stock goes up by the
// ordered quantity and the product's cost price is overwritten, once, at
// creation.
func (c *PurchaseOrderController) CreatePurchaseOrder(ctx *fiber.Ctx) error {
	var input PurchaseOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	order := Models.PurchaseOrder{
		SupplierID: input.SupplierID,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		CostPrice:  input.CostPrice,
	}

	if err := Models.CreatePurchaseOrder(c.DB, &order); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier or product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create purchase order"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(order)
}

// UpdatePurchaseOrder edits quantity and cost price. The total is recomputed
// on save; stock is never re-applied on update.
func (c *PurchaseOrderController) UpdatePurchaseOrder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	if result := c.DB.First(&order, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	var input PurchaseOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Quantity > 0 {
		order.Quantity = input.Quantity
	}
	if input.CostPrice > 0 {
		order.CostPrice = input.CostPrice
	}

	if err := c.DB.Save(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update purchase order"})
	}

	return ctx.JSON(order)
}

// DeletePurchaseOrder soft deletes a purchase order. The stock it delivered
// stays on the product.
func (c *PurchaseOrderController) DeletePurchaseOrder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	if result := c.DB.First(&order, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	c.DB.Delete(&order)

	return ctx.JSON(fiber.Map{"message": "Purchase order deleted successfully"})
}
