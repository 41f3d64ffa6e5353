package Controllers

import (
	"strconv"

	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SupplierController handles supplier-related API endpoints
type SupplierController struct {
	DB *gorm.DB
}

// NewSupplierController creates a new SupplierController
func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

// GetSuppliers retrieves all suppliers, optionally filtered by search text.
func (c *SupplierController) GetSuppliers(ctx *fiber.Ctx) error {
	query := c.DB.Order("created_at DESC")
	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR contact_person LIKE ? OR email LIKE ? OR gst_number LIKE ?",
			like, like, like, like)
	}

	var suppliers []Models.Supplier
	if result := query.Find(&suppliers); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve suppliers"})
	}
	return ctx.JSON(suppliers)
}

// GetSupplier retrieves a single supplier by ID
func (c *SupplierController) GetSupplier(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier Models.Supplier
	if result := c.DB.First(&supplier, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}
	return ctx.JSON(supplier)
}

type SupplierInput struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	GSTNumber     string `json:"gst_number"`
}

// CreateSupplier creates a new supplier
func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	var input SupplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	supplier := Models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		GSTNumber:     input.GSTNumber,
	}

	if err := c.DB.Create(&supplier).Error; err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A supplier with this name already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create supplier"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(supplier)
}

// UpdateSupplier updates an existing supplier
func (c *SupplierController) UpdateSupplier(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier Models.Supplier
	if result := c.DB.First(&supplier, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	var input SupplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = c.DB.Model(&supplier).Updates(Models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		GSTNumber:     input.GSTNumber,
	}).Error
	if err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A supplier with this name already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update supplier"})
	}

	return ctx.JSON(supplier)
}

// DeleteSupplier soft deletes a supplier
func (c *SupplierController) DeleteSupplier(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier Models.Supplier
	if result := c.DB.First(&supplier, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	c.DB.Delete(&supplier)

	return ctx.JSON(fiber.Map{"message": "Supplier deleted successfully"})
}

// Autocomplete returns up to ten suppliers matching the query, for dropdowns.
// GET /api/suppliers/autocomplete?query=
func (c *SupplierController) Autocomplete(ctx *fiber.Ctx) error {
	query := ctx.Query("query")

	var suppliers []Models.Supplier
	result := c.DB.Where("name LIKE ?", "%"+query+"%").Limit(10).Find(&suppliers)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search suppliers"})
	}
	return ctx.JSON(suppliers)
}
