package Controllers

import (
	"errors"

	"Nova/Models"
	"Nova/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StockController handles manual stock adjustments
type StockController struct {
	DB *gorm.DB
}

// NewStockController creates a new StockController
func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

// GetStockEntries lists stock entries, newest first.
func (c *StockController) GetStockEntries(ctx *fiber.Ctx) error {
	var entries []Models.StockEntry
	result := c.DB.Preload("Product").Preload("AddedBy").Order("created_at DESC").Find(&entries)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock entries"})
	}
	return ctx.JSON(entries)
}

type StockEntryInput struct {
	ProductID     uint   `json:"product_id" validate:"required"`
	QuantityAdded int    `json:"quantity_added" validate:"required,gt=0"`
	Note          string `json:"note"`
}

// CreateStockEntry records a manual stock receipt. The product counter is
// increased once, here; editing the entry later never re-applies the delta.
func (c *StockController) CreateStockEntry(ctx *fiber.Ctx) error {
	var input StockEntryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	user, _ := middleware.CurrentUser(ctx)

	entry, err := Models.ReceiveStock(c.DB, input.ProductID, input.QuantityAdded, input.Note, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record stock entry"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(entry)
}
